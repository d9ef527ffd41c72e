package sinks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

func TestFileLogSinkAppendsMonthPartitioned(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "meter-data")
	sink := NewFileLogSink(prefix)
	assert.Equal(t, "file-logger", sink.Name())

	ts := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
	block := meterlink.DataBlock{Raw: testBlock}

	require.NoError(t, sink.Process(ts, block))
	require.NoError(t, sink.Process(ts.Add(time.Minute), block))

	data, err := os.ReadFile(prefix + "-2026-08.log")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1.8.0:0000300.500*kWh")
	assert.True(t, strings.HasPrefix(lines[0], "1787659200: "))
}

func TestFileLogSinkNewMonthNewFile(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "meter-data")
	sink := NewFileLogSink(prefix)
	block := meterlink.DataBlock{Raw: testBlock}

	require.NoError(t, sink.Process(time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC), block))
	require.NoError(t, sink.Process(time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC), block))

	_, err := os.Stat(prefix + "-2026-08.log")
	assert.NoError(t, err)
	_, err = os.Stat(prefix + "-2026-09.log")
	assert.NoError(t, err)
}

func TestFileLogSinkBadPath(t *testing.T) {
	sink := NewFileLogSink(filepath.Join(t.TempDir(), "missing", "meter-data"))
	err := sink.Process(time.Now(), meterlink.DataBlock{Raw: testBlock})
	assert.Error(t, err)
}
