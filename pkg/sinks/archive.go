package sinks

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/meterdb"
	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

// ArchiveSink appends extracted readings to the SQLite archive.
// meterdb.InitializeDatabase must have run before the first cycle.
type ArchiveSink struct{}

func NewArchiveSink() *ArchiveSink {
	log.Info("Created archive sink")
	return &ArchiveSink{}
}

func (s *ArchiveSink) Name() string {
	return "archive"
}

func (s *ArchiveSink) Process(timestamp time.Time, block meterlink.DataBlock) error {
	index, err := extractIndexes(block)
	if err != nil {
		return err
	}
	powerdown, err := extractPowerdown(block)
	if err != nil {
		return err
	}
	// would wrap to a huge unsigned count in the table
	if powerdown < 0 {
		return fmt.Errorf("%w: power down counter %d", ErrValueRange, powerdown)
	}

	for i, code := range indexCodes {
		err := meterdb.InsertIndexReading(&meterdb.MeterDbIndexReading{
			Timestamp: timestamp.Unix(),
			Code:      code,
			Kwh:       index[i],
		})
		if err != nil {
			return err
		}
	}

	return meterdb.InsertPowerdownReading(&meterdb.MeterDbPowerdownReading{
		Timestamp: timestamp.Unix(),
		Count:     uint32(powerdown),
	})
}
