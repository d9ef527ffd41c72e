package pathing

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Ensure directories exist on startup
func init() {
	// Directories that must exist:
	dirs := []string{
		GetConfigDir(),
		GetDataDir(),
		GetLogDir(),
	}

	// Create all directories. Failure is only fatal later, when a
	// component actually touches the path.
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			err := os.MkdirAll(dir, 0755)
			if err != nil {
				log.Warnf("Could not create %s: %v", dir, err)
			}
		}
	}
}

func GetMeterDbPath() string {
	// Join path
	return filepath.Join(GetDataDir(), "mt174-meter.db")
}

func GetDataDir() string {
	return "/var/lib/mt174_telemetry"
}

func GetLogDir() string {
	return "/var/log/mt174_telemetry"
}

func GetConfigDir() string {
	return "/etc/mt174_telemetry"
}
