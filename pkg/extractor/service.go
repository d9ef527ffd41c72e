// Extractor turns a raw data block into a measurement code → value map.
// It is a pure function: no I/O, same map for the same block every time.
package extractor

import (
	"regexp"
	"strings"
)

// Matches one measurement line, e.g. "1-0:1.8.1*255(0001798.478*kWh)":
// optional medium-channel prefix, dotted OBIS-style code, optional "*id"
// tag, parenthesized value.
var linePattern = regexp.MustCompile(`^(?:\d-\d:)?(\S+\.\S+\.\d+)(?:\*\d+)?\((.+)\)$`)

// Extract parses a data block into a code → raw value map. Lines that do
// not look like measurements are skipped, so unknown fields in future
// firmware revisions pass through harmlessly. A code repeated within one
// block keeps its last value.
func Extract(data string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Fields(data) {
		if match := linePattern.FindStringSubmatch(line); match != nil {
			values[match[1]] = match[2]
		}
	}
	return values
}
