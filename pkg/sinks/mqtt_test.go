package sinks

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

type publishRecord struct {
	topic   string
	payload string
}

// newRecordedMQTTSink swaps the broker connection for an in-memory
// recorder so tests can pin topics, payloads and publish order.
func newRecordedMQTTSink(interval time.Duration) (*MQTTSink, *[]publishRecord) {
	sink := NewMQTTSink("localhost", 1883, "test-client", "home/energy", interval)
	records := &[]publishRecord{}
	sink.publish = func(topic string, payload string) error {
		*records = append(*records, publishRecord{topic: topic, payload: payload})
		return nil
	}
	return sink, records
}

func indexBlock(total, tariff1, tariff2 float64, powerdown int) meterlink.DataBlock {
	raw := fmt.Sprintf(
		"1-0:1.8.1*255(%011.3f*kWh)\n1-0:1.8.2*255(%011.3f*kWh)\n1-0:1.8.0*255(%011.3f*kWh)\n0-0:C.7.0*255(%d)",
		tariff1, tariff2, total, powerdown)
	return meterlink.DataBlock{Raw: raw}
}

func TestMQTTProcessSeedCyclePublishesIndexesOnly(t *testing.T) {
	sink, records := newRecordedMQTTSink(60 * time.Second)
	t0 := time.Unix(1000, 0)

	require.NoError(t, sink.Process(t0, indexBlock(300.5, 100.2, 200.3, 5)))

	// no prior reading yet, so no current/* rates
	assert.Equal(t, []publishRecord{
		{"home/energy/index/total", "1000 300.500"},
		{"home/energy/index/tariff1", "1000 100.200"},
		{"home/energy/index/tariff2", "1000 200.300"},
		{"home/energy/powerdown/counter", "1000 5"},
	}, *records)
}

func TestMQTTProcessPublishesRatesBeforeIndexes(t *testing.T) {
	sink, records := newRecordedMQTTSink(60 * time.Second)
	t0 := time.Unix(1000, 0)

	require.NoError(t, sink.Process(t0, indexBlock(300.5, 100.2, 200.3, 5)))
	*records = nil

	require.NoError(t, sink.Process(t0.Add(60*time.Second), indexBlock(301.0, 100.4, 200.6, 5)))

	assert.Equal(t, []publishRecord{
		{"home/energy/current/total", "1060 30.000"},
		{"home/energy/current/tariff1", "1060 12.000"},
		{"home/energy/current/tariff2", "1060 18.000"},
		{"home/energy/index/total", "1060 301.000"},
		{"home/energy/index/tariff1", "1060 100.400"},
		{"home/energy/index/tariff2", "1060 200.600"},
		{"home/energy/powerdown/counter", "1060 5"},
	}, *records)
}

func TestMQTTProcessStaleWindowStillPublishesIndexes(t *testing.T) {
	sink, records := newRecordedMQTTSink(60 * time.Second)
	t0 := time.Unix(1000, 0)

	require.NoError(t, sink.Process(t0, indexBlock(300.5, 100.2, 200.3, 5)))
	*records = nil

	// 180 s elapsed against a 90 s limit: rates are dropped, the
	// cumulative counters and the power-down count still go out
	require.NoError(t, sink.Process(t0.Add(180*time.Second), indexBlock(301.0, 100.4, 200.6, 6)))

	assert.Equal(t, []publishRecord{
		{"home/energy/index/total", "1180 301.000"},
		{"home/energy/index/tariff1", "1180 100.400"},
		{"home/energy/index/tariff2", "1180 200.600"},
		{"home/energy/powerdown/counter", "1180 6"},
	}, *records)
}

func TestMQTTProcessMissingCode(t *testing.T) {
	sink, records := newRecordedMQTTSink(60 * time.Second)

	err := sink.Process(time.Unix(1000, 0), meterlink.DataBlock{Raw: "1-0:1.8.0*255(1.0*kWh)"})
	assert.ErrorIs(t, err, ErrMissingCode)
	assert.Empty(t, *records)
}
