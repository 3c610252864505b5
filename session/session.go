package session

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nixxel-company-limited/escpos-ws-bridge/printer"
)

// Phase is the connection lifecycle state of a session
type Phase string

const (
	PhaseConnecting   Phase = "connecting"
	PhaseConnected    Phase = "connected"
	PhaseDisconnected Phase = "disconnected"
)

// Sink is the printing capability the session dispatches tickets into.
// It is assumed stateful and not goroutine-safe; the session is its only
// caller and calls it from a single goroutine.
type Sink interface {
	Init() error
	Render(header, body string) error
}

// Conn is the subset of a websocket connection the session consumes
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens a connection to the message source
type Dialer func(url string) (Conn, error)

func defaultDialer(url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Session keeps one logical connection to the message source alive and
// feeds every received text frame to the sink in receipt order. It never
// gives up: any connect failure or drop is followed by a fixed cooldown
// and another attempt, for the lifetime of the process.
type Session struct {
	url      string
	sink     Sink
	cooldown time.Duration
	dial     Dialer
	logger   *log.Logger
	mu       sync.Mutex
	phase    Phase
}

// New creates a session targeting the given websocket URL
func New(url string, sink Sink, cooldown time.Duration) *Session {
	logger := log.New(os.Stdout, "[SESSION] ", log.LstdFlags|log.Lmsgprefix)
	return NewWithLogger(url, sink, cooldown, logger)
}

// NewWithLogger creates a session with a custom logger
func NewWithLogger(url string, sink Sink, cooldown time.Duration, logger *log.Logger) *Session {
	return &Session{
		url:      url,
		sink:     sink,
		cooldown: cooldown,
		dial:     defaultDialer,
		logger:   logger,
		phase:    PhaseConnecting,
	}
}

// Run drives the session forever. It blocks the calling goroutine and
// only returns with the process.
func (s *Session) Run() {
	for {
		s.runOnce()
		s.logger.Printf("Retrying in %s...", s.cooldown)
		time.Sleep(s.cooldown)
	}
}

// runOnce performs one connect attempt and, if it succeeds, consumes the
// connection until it drops. Exactly one cooldown follows each return.
func (s *Session) runOnce() {
	s.setPhase(PhaseConnecting)
	s.logger.Printf("Connecting to %s...", s.url)

	conn, err := s.dial(s.url)
	if err != nil {
		// Stay in Connecting; the attempt never produced a connection
		s.logger.Printf("Connect failed: %v", err)
		return
	}
	defer conn.Close()

	s.setPhase(PhaseConnected)
	s.logger.Println("Connected")

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			s.logger.Printf("Connection lost: %v", err)
			s.setPhase(PhaseDisconnected)
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		// The next frame is not read until this ticket has fully
		// passed through the sink
		s.dispatch(string(payload))
	}
}

// dispatch prints one ticket. Failures are logged and swallowed; a lost
// job never takes the connection down with it.
func (s *Session) dispatch(body string) {
	ticket := printer.NewTicket(body)
	s.logger.Printf("Received: %s", ticket.Body)

	// Defensive reset before every ticket
	if err := s.sink.Init(); err != nil {
		s.logger.Printf("Print failed (init): %v", err)
		return
	}

	if err := s.sink.Render(ticket.Header, ticket.Body); err != nil {
		s.logger.Printf("Print failed: %v", err)
		return
	}

	s.logger.Println("Printed ticket")
}

func (s *Session) setPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// Phase returns the session's current lifecycle phase
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Target returns the message source URL
func (s *Session) Target() string {
	return s.url
}
