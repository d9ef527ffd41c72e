package sinks

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/extractor"
	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

// FileLogSink appends the extracted measurement map to a plain text log
// partitioned by month: <prefix>-YYYY-MM.log.
type FileLogSink struct {
	pathPrefix string
}

func NewFileLogSink(pathPrefix string) *FileLogSink {
	log.WithField("prefix", pathPrefix).Info("Created file log sink")
	return &FileLogSink{pathPrefix: pathPrefix}
}

func (s *FileLogSink) Name() string {
	return "file-logger"
}

func (s *FileLogSink) Process(timestamp time.Time, block meterlink.DataBlock) error {
	filename := fmt.Sprintf("%s-%s.log", s.pathPrefix, timestamp.Format("2006-01"))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	values := extractor.Extract(block.Raw)
	if _, err := fmt.Fprintf(f, "%d: %v\n", timestamp.Unix(), values); err != nil {
		return fmt.Errorf("failed to append reading: %w", err)
	}

	log.WithField("file", filename).Debug("Written data")
	return nil
}
