package scheduler

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
	"github.com/enertrace/mt174_telemetry/pkg/sinks"
)

// tickTime is how long the wait loop sleeps between cancellation checks.
const tickTime = 100 * time.Millisecond

func NewScheduler(source Source, sinkList []sinks.Sink, interval time.Duration) *Scheduler {
	log.WithFields(log.Fields{"interval": interval, "sinks": len(sinkList)}).Info("Created scheduler")
	return &Scheduler{
		source:   source,
		sinks:    sinkList,
		interval: interval,
	}
}

// Run drives the poll loop until ctx is cancelled, which is the only
// clean stop and returns nil. The interval is measured from each cycle's
// start time, so a cycle that overruns it makes the next one fire
// immediately; overruns are never queued up as extra cycles.
func (s *Scheduler) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scheduler defect: %v", r)
		}
	}()

	var cycleStart time.Time
	for {
		// overrunning cycles skip the wait loop below, so cancellation
		// has to be observed here too
		if ctx.Err() != nil {
			return nil
		}
		for time.Since(cycleStart) < s.interval {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(tickTime):
			}
		}
		cycleStart = time.Now()
		s.execute(ctx, cycleStart)
	}
}

// execute runs one acquisition + dispatch cycle. A failed or empty read
// skips dispatch entirely; sink failures are contained per sink.
func (s *Scheduler) execute(ctx context.Context, timestamp time.Time) {
	begin := time.Now()
	block, err := s.source.Read()
	if err != nil {
		log.WithError(err).Error("Error in meter read")
		return
	}
	log.WithField("duration", time.Since(begin)).Info("Read data")

	if block.Empty {
		log.Warn("Meter returned empty data block, skipping sinks")
		return
	}
	log.WithField("bytes", len(block.Raw)).Debug("Data block received")

	for _, sink := range s.sinks {
		if ctx.Err() != nil {
			return
		}
		s.runSink(sink, timestamp, block)
	}
}

// runSink guards one sink invocation: errors and panics are logged with
// the sink identity and never reach the loop or sibling sinks.
func (s *Scheduler) runSink(sink sinks.Sink, timestamp time.Time, block meterlink.DataBlock) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"sink": sink.Name(), "panic": r}).Error("Panic in sink")
		}
	}()

	begin := time.Now()
	if err := sink.Process(timestamp, block); err != nil {
		log.WithField("sink", sink.Name()).WithError(err).Error("Error in sink")
		return
	}
	log.WithFields(log.Fields{"sink": sink.Name(), "duration": time.Since(begin)}).Info("Sink processed reading")
}
