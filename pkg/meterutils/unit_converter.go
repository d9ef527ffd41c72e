package meterutils

import (
	"math"
	"strconv"
	"strings"
)

// No negative values
func KwhToWh(kwh float64) uint32 {
	if kwh < 0 {
		return 0
	}
	return uint32(math.Round(kwh * 1000))
}

func WhToKwh(wh uint32) float64 {
	return float64(wh) / 1000
}

// ParseValue strips the optional "*unit" suffix from a raw measurement
// value (e.g. "0001798.478*kWh") and parses the numeric part.
func ParseValue(raw string) (float64, error) {
	num := raw
	if i := strings.IndexByte(raw, '*'); i >= 0 {
		num = raw[:i]
	}
	return strconv.ParseFloat(num, 64)
}
