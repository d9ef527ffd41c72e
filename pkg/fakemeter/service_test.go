package fakemeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertrace/mt174_telemetry/pkg/extractor"
	"github.com/enertrace/mt174_telemetry/pkg/meterutils"
)

func TestReadIsDeterministicPerSeed(t *testing.T) {
	a := NewFakeMeter(42)
	b := NewFakeMeter(42)

	for i := 0; i < 5; i++ {
		blockA, err := a.Read()
		require.NoError(t, err)
		blockB, err := b.Read()
		require.NoError(t, err)
		assert.Equal(t, blockA.Raw, blockB.Raw)
		assert.False(t, blockA.Empty)
	}
}

func TestReadIndexesAdvance(t *testing.T) {
	meter := NewFakeMeter(1)

	var prevTotal float64
	for i := 0; i < 3; i++ {
		block, err := meter.Read()
		require.NoError(t, err)

		values := extractor.Extract(block.Raw)
		tariff1, err := meterutils.ParseValue(values["1.8.1"])
		require.NoError(t, err)
		tariff2, err := meterutils.ParseValue(values["1.8.2"])
		require.NoError(t, err)
		total, err := meterutils.ParseValue(values["1.8.0"])
		require.NoError(t, err)

		assert.Greater(t, total, prevTotal)
		assert.InDelta(t, tariff1+tariff2, total, 0.002)
		prevTotal = total
	}
}

func TestBuildFrame(t *testing.T) {
	frame := BuildFrame("1-0:1.8.0*255(1.0*kWh)\r\n")

	require.Greater(t, len(frame), 5)
	assert.Equal(t, byte(0x02), frame[0])
	assert.Equal(t, byte(0x03), frame[len(frame)-2])
	assert.Equal(t, []byte("!\r\n"), frame[len(frame)-5:len(frame)-2])

	var bcc byte
	for _, b := range frame[1 : len(frame)-1] {
		bcc ^= b
	}
	assert.Equal(t, bcc, frame[len(frame)-1])
}
