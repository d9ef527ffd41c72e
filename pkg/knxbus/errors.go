package knxbus

import "errors"

var (
	ErrInvalidGroupAddress = errors.New("invalid group address")
	ErrHandshake           = errors.New("knxd group socket handshake failed")
)
