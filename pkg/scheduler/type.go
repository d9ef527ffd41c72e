package scheduler

import (
	"time"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
	"github.com/enertrace/mt174_telemetry/pkg/sinks"
)

// Source is anything that can produce one data block per call. Satisfied
// by meterlink.MT174Link and fakemeter.FakeMeter.
type Source interface {
	Read() (meterlink.DataBlock, error)
}

type Scheduler struct {
	source   Source
	sinks    []sinks.Sink
	interval time.Duration
}
