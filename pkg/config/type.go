package config

type PollerConfig struct {
	SerialDevice        string `toml:"serial_device"`
	Baudrate            uint   `toml:"baudrate"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	// Replace the serial meter with the deterministic generator.
	UseFakeMeter bool   `toml:"use_fake_meter"`
	LogLevel     string `toml:"log_level"`

	MQTT    MQTTSinkConfig    `toml:"mqtt"`
	KNX     KNXSinkConfig     `toml:"knx"`
	FileLog FileLogSinkConfig `toml:"file_log"`
	Archive ArchiveSinkConfig `toml:"archive"`
}

type MQTTSinkConfig struct {
	Enabled   bool   `toml:"enabled"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	ClientID  string `toml:"client_id"`
	RootTopic string `toml:"root_topic"`
}

type KNXSinkConfig struct {
	Enabled bool `toml:"enabled"`
	// host:port of the knxd group socket, usually port 6720
	KnxdAddress    string `toml:"knxd_address"`
	TotalGroup     string `toml:"total_group"`
	Tariff1Group   string `toml:"tariff1_group"`
	Tariff2Group   string `toml:"tariff2_group"`
	PowerdownGroup string `toml:"powerdown_group"`
}

type FileLogSinkConfig struct {
	Enabled bool `toml:"enabled"`
	// Month suffix and .log extension are appended to the prefix.
	PathPrefix string `toml:"path_prefix"`
}

type ArchiveSinkConfig struct {
	Enabled bool `toml:"enabled"`
}
