package sinks

import (
	"fmt"
	"strconv"

	"github.com/enertrace/mt174_telemetry/pkg/extractor"
	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
	"github.com/enertrace/mt174_telemetry/pkg/meterutils"
)

// Cumulative energy index codes every sink cares about, with the names
// they are published under.
var (
	indexCodes = [3]string{"1.8.0", "1.8.1", "1.8.2"}
	indexNames = [3]string{"total", "tariff1", "tariff2"}
)

// Power-down event counter.
const powerdownCode = "C.7.0"

// extractIndexes pulls the three cumulative energy indexes (kWh) out of
// a data block.
func extractIndexes(block meterlink.DataBlock) ([3]float64, error) {
	values := extractor.Extract(block.Raw)
	var out [3]float64
	for i, code := range indexCodes {
		raw, ok := values[code]
		if !ok {
			return out, fmt.Errorf("%w: %s", ErrMissingCode, code)
		}
		v, err := meterutils.ParseValue(raw)
		if err != nil {
			return out, fmt.Errorf("bad value for %s: %w", code, err)
		}
		out[i] = v
	}
	return out, nil
}

func extractPowerdown(block meterlink.DataBlock) (int, error) {
	values := extractor.Extract(block.Raw)
	raw, ok := values[powerdownCode]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingCode, powerdownCode)
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad value for %s: %w", powerdownCode, err)
	}
	return count, nil
}
