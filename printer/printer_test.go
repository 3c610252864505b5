package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nixxel-company-limited/escpos-ws-bridge/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingAdapter errors on every write
type failingAdapter struct{}

func (f *failingAdapter) Open() error                    { return nil }
func (f *failingAdapter) Write(data []byte) (int, error) { return 0, errors.New("endpoint stalled") }
func (f *failingAdapter) Read(buf []byte) (int, error)   { return 0, nil }
func (f *failingAdapter) Close() error                   { return nil }
func (f *failingAdapter) IsOpen() bool                   { return true }

func newBufferPrinter(t *testing.T) (*Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	device := adapter.NewConsoleAdapterWithWriter(&buf)
	require.NoError(t, device.Open())
	return New(device), &buf
}

func TestNewTicket(t *testing.T) {
	ticket := NewTicket("Order #42")

	assert.Equal(t, "NEW MESSAGE", DefaultHeader)
	assert.Equal(t, DefaultHeader, ticket.Header)
	assert.Equal(t, "Order #42", ticket.Body)
}

func TestInit(t *testing.T) {
	prn, buf := newBufferPrinter(t)

	require.NoError(t, prn.Init())
	assert.Equal(t, []byte{0x1B, 0x40}, buf.Bytes())
}

func TestInitIsRepeatable(t *testing.T) {
	prn, buf := newBufferPrinter(t)

	require.NoError(t, prn.Init())
	require.NoError(t, prn.Init())
	assert.Equal(t, []byte{0x1B, 0x40, 0x1B, 0x40}, buf.Bytes())
}

func TestRenderCommandSequence(t *testing.T) {
	prn, buf := newBufferPrinter(t)

	require.NoError(t, prn.Render(DefaultHeader, "Order #42"))
	out := buf.Bytes()

	header := bytes.Index(out, []byte(DefaultHeader))
	body := bytes.Index(out, []byte("Order #42"))
	boldOn := bytes.Index(out, []byte{0x1B, 0x45, 0x01})
	boldOff := bytes.Index(out, []byte{0x1B, 0x45, 0x00})
	sizeDouble := bytes.Index(out, []byte{0x1D, 0x21, 0x11})

	require.GreaterOrEqual(t, header, 0)
	require.GreaterOrEqual(t, body, 0)

	// Header is bold and enlarged, body follows in normal style
	assert.Less(t, boldOn, header)
	assert.Less(t, sizeDouble, header)
	assert.Less(t, header, boldOff)
	assert.Less(t, boldOff, body)

	// Trailing feed and cut close the ticket
	assert.True(t, bytes.HasSuffix(out, []byte{0x1D, 0x56, 0x42, 0x00}))
	assert.Equal(t, 3, bytes.Count(out, []byte{0x1B, 0x64, 0x01}))
}

func TestRenderBodyVerbatim(t *testing.T) {
	prn, buf := newBufferPrinter(t)

	body := "unsanitized \x1b@\x00\x07 payload\r\n"
	require.NoError(t, prn.Render(DefaultHeader, body))

	assert.True(t, bytes.Contains(buf.Bytes(), []byte(body)))
}

func TestRenderWriteFailure(t *testing.T) {
	prn := New(&failingAdapter{})

	err := prn.Render(DefaultHeader, "Order #42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer write failed")
}

func TestInitWriteFailure(t *testing.T) {
	prn := New(&failingAdapter{})

	err := prn.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer init failed")
}

func TestRenderOnClosedAdapter(t *testing.T) {
	device := adapter.NewConsoleAdapterWithWriter(&bytes.Buffer{})
	prn := New(device)

	// Never opened
	assert.Error(t, prn.Render(DefaultHeader, "Order #42"))
}
