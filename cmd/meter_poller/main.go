// Meter poller reads the MT174 on a fixed interval and fans each reading
// out to the telemetry sinks enabled in the config.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/config"
	"github.com/enertrace/mt174_telemetry/pkg/fakemeter"
	"github.com/enertrace/mt174_telemetry/pkg/meterdb"
	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
	"github.com/enertrace/mt174_telemetry/pkg/scheduler"
	"github.com/enertrace/mt174_telemetry/pkg/sinks"
)

func main() {
	// Load config
	if err := config.LoadPollerConfig(); err != nil {
		log.Fatalf("Failed to load poller config: %v", err)
	}
	cfg := config.ActivePollerConfig

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	interval := time.Duration(cfg.PollIntervalSeconds) * time.Second

	var source scheduler.Source
	if cfg.UseFakeMeter {
		source = fakemeter.NewFakeMeter(time.Now().UnixNano())
	} else {
		source = meterlink.NewMT174Link(cfg.SerialDevice, cfg.Baudrate)
	}

	sinkList := buildSinks(cfg, interval)
	if len(sinkList) == 0 {
		log.Fatal("No sinks enabled in config")
	}

	// SIGINT/SIGTERM is the clean stop; anything else out of the
	// scheduler is a defect.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scheduler.NewScheduler(source, sinkList, interval).Run(ctx); err != nil {
		log.Fatalf("Scheduler stopped abnormally: %v", err)
	}
	log.Info("Interrupt received, exiting")
}

// buildSinks registers the enabled sinks in a fixed order; sinks run in
// this order every cycle.
func buildSinks(cfg *config.PollerConfig, interval time.Duration) []sinks.Sink {
	var list []sinks.Sink

	if cfg.MQTT.Enabled {
		list = append(list, sinks.NewMQTTSink(
			cfg.MQTT.Host,
			cfg.MQTT.Port,
			cfg.MQTT.ClientID,
			cfg.MQTT.RootTopic,
			interval,
		))
	}
	if cfg.KNX.Enabled {
		knxSink, err := sinks.NewKNXSink(
			cfg.KNX.KnxdAddress,
			cfg.KNX.TotalGroup,
			cfg.KNX.Tariff1Group,
			cfg.KNX.Tariff2Group,
			cfg.KNX.PowerdownGroup,
		)
		if err != nil {
			log.Fatalf("Invalid KNX sink config: %v", err)
		}
		list = append(list, knxSink)
	}
	if cfg.FileLog.Enabled {
		list = append(list, sinks.NewFileLogSink(cfg.FileLog.PathPrefix))
	}
	if cfg.Archive.Enabled {
		meterdb.InitializeDatabase()
		list = append(list, sinks.NewArchiveSink())
	}

	return list
}
