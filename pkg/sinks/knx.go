package sinks

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/knxbus"
	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
	"github.com/enertrace/mt174_telemetry/pkg/meterutils"
)

// KNXSink writes the energy indexes in Wh to group addresses on the bus
// as 4-byte big-endian values, plus the power-down counter as a small
// value. One knxd connection per cycle.
type KNXSink struct {
	knxdAddress    string
	indexGroups    [3]knxbus.GroupAddress
	powerdownGroup knxbus.GroupAddress
}

func NewKNXSink(knxdAddress string, totalGA, tariff1GA, tariff2GA, powerdownGA string) (*KNXSink, error) {
	sink := &KNXSink{knxdAddress: knxdAddress}

	for i, raw := range [3]string{totalGA, tariff1GA, tariff2GA} {
		ga, err := knxbus.ParseGroupAddress(raw)
		if err != nil {
			return nil, err
		}
		sink.indexGroups[i] = ga
	}
	ga, err := knxbus.ParseGroupAddress(powerdownGA)
	if err != nil {
		return nil, err
	}
	sink.powerdownGroup = ga

	log.WithField("knxd", knxdAddress).Info("Created KNX sink")
	return sink, nil
}

func (s *KNXSink) Name() string {
	return "knx"
}

func (s *KNXSink) Process(timestamp time.Time, block meterlink.DataBlock) error {
	index, err := extractIndexes(block)
	if err != nil {
		return err
	}
	powerdown, err := extractPowerdown(block)
	if err != nil {
		return err
	}
	if powerdown < 0 || powerdown > 255 {
		return fmt.Errorf("%w: power down counter %d", ErrValueRange, powerdown)
	}

	client, err := knxbus.Dial(s.knxdAddress)
	if err != nil {
		return err
	}
	defer client.Close()

	for i, ga := range s.indexGroups {
		wh := meterutils.KwhToWh(index[i])
		if wh > math.MaxInt32 {
			return fmt.Errorf("%w: %d Wh exceeds %d", ErrValueRange, wh, int64(math.MaxInt32))
		}
		if err := client.GroupWrite(ga, knxbus.EncodeUint32(wh)); err != nil {
			return err
		}
		log.WithFields(log.Fields{"group": ga.String(), "wh": wh}).Info("Wrote index to bus")
	}

	return client.GroupWrite(s.powerdownGroup, []byte{byte(powerdown)})
}
