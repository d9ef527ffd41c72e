package meterlink

import "errors"

// Every failure here aborts only the current read cycle; the caller is
// expected to retry on its next cycle.
var (
	ErrNoResponse        = errors.New("empty reply instead of identification")
	ErrBadIdentification = errors.New("malformed identification message")
	ErrTruncatedFrame    = errors.New("empty read inside data block")
	ErrChecksumMismatch  = errors.New("block check character mismatch")
)
