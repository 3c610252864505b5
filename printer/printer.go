package printer

import (
	"fmt"

	"github.com/nixxel-company-limited/escpos-ws-bridge/adapter"
)

// ESC/POS command sequences
var (
	cmdInit        = []byte{0x1B, 0x40}             // ESC @
	cmdSmoothingOn = []byte{0x1D, 0x62, 0x01}       // GS b 1
	cmdBoldOn      = []byte{0x1B, 0x45, 0x01}       // ESC E 1
	cmdBoldOff     = []byte{0x1B, 0x45, 0x00}       // ESC E 0
	cmdSizeDouble  = []byte{0x1D, 0x21, 0x11}       // GS ! — double width and height
	cmdSizeNormal  = []byte{0x1D, 0x21, 0x00}       // GS ! — normal
	cmdFeed        = []byte{0x1B, 0x64, 0x01}       // ESC d 1
	cmdPartialCut  = []byte{0x1D, 0x56, 0x42, 0x00} // GS V 66 0
)

// DefaultHeader is the label printed above every message body
const DefaultHeader = "NEW MESSAGE"

// Ticket is one inbound message prepared for printing. It lives for a
// single dispatch; a ticket that fails to print is not retried.
type Ticket struct {
	Header string
	Body   string
}

// NewTicket builds a ticket from a raw message payload
func NewTicket(body string) Ticket {
	return Ticket{Header: DefaultHeader, Body: body}
}

// Printer renders tickets onto one printer device. It is stateful and
// not goroutine-safe; the caller must serialize Init/Render calls.
type Printer struct {
	adapter adapter.Adapter
}

// New creates a printer over the given transport
func New(device adapter.Adapter) *Printer {
	return &Printer{adapter: device}
}

// Init resets the device to its power-on state. Safe to call repeatedly;
// the session issues it before every ticket as a defensive reset.
func (p *Printer) Init() error {
	if _, err := p.adapter.Write(cmdInit); err != nil {
		return fmt.Errorf("printer init failed: %w", err)
	}
	return nil
}

// Render prints one ticket: bold enlarged header, a blank line, the body
// verbatim, trailing feeds and a partial cut. The body is not inspected
// or escaped; whatever bytes the message carried reach the device.
func (p *Printer) Render(header, body string) error {
	for _, chunk := range [][]byte{
		cmdSmoothingOn,
		cmdBoldOn,
		cmdSizeDouble,
		[]byte(header), {'\n'},
		cmdBoldOff,
		cmdSizeNormal,
		cmdFeed,
		[]byte(body), {'\n'},
		cmdFeed,
		cmdFeed,
		cmdPartialCut,
	} {
		if _, err := p.adapter.Write(chunk); err != nil {
			return fmt.Errorf("printer write failed: %w", err)
		}
	}
	return nil
}
