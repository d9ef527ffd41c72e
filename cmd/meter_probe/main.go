// Meter probe performs a single read cycle and prints the extracted
// measurements. Useful to verify wiring and line settings before
// enabling the poller.
package main

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/config"
	"github.com/enertrace/mt174_telemetry/pkg/extractor"
	"github.com/enertrace/mt174_telemetry/pkg/fakemeter"
	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
	"github.com/enertrace/mt174_telemetry/pkg/scheduler"
)

func main() {
	if err := config.LoadPollerConfig(); err != nil {
		log.Fatalf("Failed to load poller config: %v", err)
	}
	cfg := config.ActivePollerConfig

	var source scheduler.Source
	if cfg.UseFakeMeter {
		source = fakemeter.NewFakeMeter(time.Now().UnixNano())
	} else {
		source = meterlink.NewMT174Link(cfg.SerialDevice, cfg.Baudrate)
	}

	block, err := source.Read()
	if err != nil {
		log.Fatalf("Read failed: %v", err)
	}
	if block.Empty {
		fmt.Println("Meter answered but sent no data block")
		return
	}

	values := extractor.Extract(block.Raw)
	codes := make([]string, 0, len(values))
	for code := range values {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("%-10s %s\n", code, values[code])
	}
}
