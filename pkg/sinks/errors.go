package sinks

import "errors"

var (
	ErrMissingCode       = errors.New("measurement code missing from data block")
	ErrValueRange        = errors.New("value out of range")
	ErrIntervalTolerance = errors.New("interval since last accepted reading too long")
)
