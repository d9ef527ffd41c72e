package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/enertrace/mt174_telemetry/pkg/pathing"
)

var ActivePollerConfig *PollerConfig

func LoadPollerConfig() error {
	configPath := filepath.Join(pathing.GetConfigDir(), "meter_poller.toml")

	// Create default if not exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultPollerConfig()
		// Create file
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer cfgFile.Close()
		toml.NewEncoder(cfgFile).Encode(cfg)
		ActivePollerConfig = cfg
		return nil
	}

	// Load existing config
	var config PollerConfig
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return err
	}
	ActivePollerConfig = &config
	return nil
}

func defaultPollerConfig() *PollerConfig {
	return &PollerConfig{
		SerialDevice:        "/dev/ttyUSB0",
		Baudrate:            300,
		PollIntervalSeconds: 60,
		UseFakeMeter:        false,
		LogLevel:            "info",
		MQTT: MQTTSinkConfig{
			Enabled:   true,
			Host:      "localhost",
			Port:      1883,
			ClientID:  "mt174-poller",
			RootTopic: "home/energy",
		},
		KNX: KNXSinkConfig{
			Enabled:        false,
			KnxdAddress:    "localhost:6720",
			TotalGroup:     "14/1/0",
			Tariff1Group:   "14/1/1",
			Tariff2Group:   "14/1/2",
			PowerdownGroup: "14/1/3",
		},
		FileLog: FileLogSinkConfig{
			Enabled:    true,
			PathPrefix: filepath.Join(pathing.GetLogDir(), "meter-data"),
		},
		Archive: ArchiveSinkConfig{
			Enabled: false,
		},
	}
}
