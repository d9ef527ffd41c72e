package sinks

import (
	"fmt"
	"time"
)

// marginPercent widens the acceptable window beyond the nominal polling
// interval before a differencing step is considered stale.
const marginPercent = 0.5

// RateWindow turns successive cumulative index readings into per-hour
// rates. It retains a single slot: only the most recent accepted reading.
// A reading arriving after more than nominal*(1+margin) since the last
// accepted one is rejected and leaves the slot untouched.
type RateWindow struct {
	nominal time.Duration

	hasPrev bool
	prevAt  time.Time
	prev    [3]float64
}

func NewRateWindow(nominal time.Duration) *RateWindow {
	return &RateWindow{nominal: nominal}
}

// Advance feeds one reading. The first reading seeds the window and
// yields no rates (ok false, nil error). Later readings either yield
// rates in units/hour or fail with ErrIntervalTolerance.
func (w *RateWindow) Advance(timestamp time.Time, values [3]float64) (rates [3]float64, ok bool, err error) {
	if !w.hasPrev {
		w.hasPrev = true
		w.prevAt = timestamp
		w.prev = values
		return rates, false, nil
	}

	elapsed := timestamp.Sub(w.prevAt)
	limit := time.Duration(float64(w.nominal) * (1 + marginPercent))
	if elapsed > limit {
		return rates, false, fmt.Errorf("%w: %.2fs elapsed, limit %.2fs",
			ErrIntervalTolerance, elapsed.Seconds(), limit.Seconds())
	}

	for i := range values {
		rates[i] = (values[i] - w.prev[i]) * 3600 / elapsed.Seconds()
	}
	w.prevAt = timestamp
	w.prev = values
	return rates, true, nil
}
