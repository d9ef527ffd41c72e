// Sinks are the telemetry destinations fed by the scheduler. Each sink
// keeps its own retained state across cycles; none of them share anything.
package sinks

import (
	"time"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

// Sink is one telemetry destination. Process receives the cycle start
// timestamp and the validated data block; any error it returns is logged
// against its Name by the scheduler and contained there, never reaching
// sibling sinks or the poll loop.
type Sink interface {
	Name() string
	Process(timestamp time.Time, block meterlink.DataBlock) error
}
