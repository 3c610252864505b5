package adapter

import (
	"errors"
	"io"
	"os"
	"sync"
)

// ConsoleAdapter is the mock transport: it writes the raw command stream
// to an io.Writer instead of a physical device. Used in mock mode and in
// tests.
type ConsoleAdapter struct {
	out    io.Writer
	isOpen bool
	mu     sync.Mutex
}

// NewConsoleAdapter creates a console adapter writing to stdout
func NewConsoleAdapter() *ConsoleAdapter {
	return &ConsoleAdapter{out: os.Stdout}
}

// NewConsoleAdapterWithWriter creates a console adapter writing to w
func NewConsoleAdapterWithWriter(w io.Writer) *ConsoleAdapter {
	return &ConsoleAdapter{out: w}
}

func (a *ConsoleAdapter) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isOpen {
		return errors.New("device already open")
	}

	a.isOpen = true
	return nil
}

func (a *ConsoleAdapter) Write(data []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return 0, errors.New("device not open")
	}

	return a.out.Write(data)
}

// Read always reports no data; a console has no status channel
func (a *ConsoleAdapter) Read(buf []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return 0, errors.New("device not open")
	}

	return 0, nil
}

func (a *ConsoleAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.isOpen = false
	return nil
}

func (a *ConsoleAdapter) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isOpen
}
