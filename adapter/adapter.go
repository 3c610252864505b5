package adapter

// Adapter is the transport a printer is reached through. Implementations
// are stateful and assume a single owner; callers must serialize access.
type Adapter interface {
	// Open acquires the underlying transport
	Open() error

	// Write sends raw command bytes to the printer
	Write(data []byte) (int, error)

	// Read reads status data from the printer, if the transport supports it
	Read(buf []byte) (int, error)

	// Close releases the transport
	Close() error

	// IsOpen returns whether the transport is open
	IsOpen() bool
}
