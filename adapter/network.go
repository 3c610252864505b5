package adapter

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultDialTimeout bounds how long a network printer connect may take
const DefaultDialTimeout = 1 * time.Second

// NetworkAdapter reaches a printer over raw TCP (JetDirect style,
// conventionally port 9100).
type NetworkAdapter struct {
	address     string
	dialTimeout time.Duration
	conn        net.Conn
	isOpen      bool
	mu          sync.Mutex
}

// NewNetworkAdapter creates an adapter for a printer at host:port
func NewNetworkAdapter(host string, port int) *NetworkAdapter {
	return &NetworkAdapter{
		address:     net.JoinHostPort(host, fmt.Sprint(port)),
		dialTimeout: DefaultDialTimeout,
	}
}

// Open dials the printer
func (a *NetworkAdapter) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isOpen {
		return errors.New("device already open")
	}

	conn, err := net.DialTimeout("tcp", a.address, a.dialTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to printer at %s: %w", a.address, err)
	}

	a.conn = conn
	a.isOpen = true
	return nil
}

// Write sends command bytes down the socket
func (a *NetworkAdapter) Write(data []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return 0, errors.New("device not open")
	}

	n, err := a.conn.Write(data)
	if err != nil {
		return n, fmt.Errorf("write failed: %w", err)
	}

	return n, nil
}

// Read reads status bytes from the socket
func (a *NetworkAdapter) Read(buf []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return 0, errors.New("device not open")
	}

	n, err := a.conn.Read(buf)
	if err != nil {
		return n, fmt.Errorf("read failed: %w", err)
	}

	return n, nil
}

// Close shuts the socket down
func (a *NetworkAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return nil
	}

	a.isOpen = false
	if err := a.conn.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}

	return nil
}

// IsOpen returns whether the socket is connected
func (a *NetworkAdapter) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isOpen
}

// Address returns the printer's host:port
func (a *NetworkAdapter) Address() string {
	return a.address
}
