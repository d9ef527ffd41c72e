package meterlink

import "io"

// DataBlock is the outcome of one read cycle: the raw measurement lines
// that sat between STX and the end-of-data marker, already verified
// against the block check character. Empty marks the tolerated variant
// where the meter answered the acknowledgement with no STX at all.
type DataBlock struct {
	Raw   string
	Empty bool
}

type MT174Link struct {
	device   string
	baudrate uint

	// openPort is swapped for a scripted in-memory port in tests.
	openPort func() (io.ReadWriteCloser, error)
}
