// Fakemeter stands in for the MT174 hardware during development and tests.
package fakemeter

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

// blockTemplate mirrors the data readout of an Iskra MT174. The three
// verbs are tariff 1 index, tariff 2 index and their total, in kWh.
const blockTemplate = `0-0:F.F.0*255(0000000)
1-0:0.0.0*255(352143)
0-0:C.1.0*255(62791737)
C.1.1(ISK0MT174-0001)
1-0:1.8.1*255(%011.3f*kWh)
1-0:1.8.2*255(%011.3f*kWh)
1-0:1.8.0*255(%011.3f*kWh)
1-0:2.8.1*255(0000001.012*kWh)
1-0:2.8.2*255(0000001.612*kWh)
1-0:2.8.0*255(0000002.624*kWh)
1-0:32.7.0*255(233.1*V)
1-0:52.7.0*255(232.7*V)
1-0:72.7.0*255(233.8*V)
1-0:31.7.0*255(5.36*A)
1-0:51.7.0*255(8.06*A)
1-0:71.7.0*255(5.71*A)
1-0:36.7.0*255(1.086*kW)
1-0:56.7.0*255(1.714*kW)
1-0:76.7.0*255(1.220*kW)
1-0:33.7.0*255(0.866)
1-0:53.7.0*255(0.915)
1-0:73.7.0*255(0.911)
0-0:C.7.0*255(5)
0-0:C.7.1*255(5)
0-0:C.7.2*255(5)
0-0:C.7.3*255(5)
1-0:0.2.0*255(1.03)
0-0:C.1.6*255(FDF5)`

// FakeMeter produces synthetic data blocks: two tariff indexes advance by
// a seeded pseudo-random amount on every read, so runs are reproducible.
type FakeMeter struct {
	rng   *rand.Rand
	index [2]float64
}

func NewFakeMeter(seed int64) *FakeMeter {
	log.WithField("seed", seed).Info("Created fake meter")
	return &FakeMeter{rng: rand.New(rand.NewSource(seed))}
}

// Read never fails and never returns an empty block.
func (f *FakeMeter) Read() (meterlink.DataBlock, error) {
	f.index[0] += f.rng.Float64()
	f.index[1] += f.rng.Float64()
	total := f.index[0] + f.index[1]
	block := fmt.Sprintf(blockTemplate, f.index[0], f.index[1], total)
	return meterlink.DataBlock{Raw: block}, nil
}

// BuildFrame wraps a data block payload in the MT174 wire framing:
// STX, payload, end-of-data marker line, ETX and the block check
// character over everything after STX. The payload must not contain '!'.
func BuildFrame(payload string) []byte {
	frame := []byte{0x02}
	frame = append(frame, payload...)
	frame = append(frame, '!', '\r', '\n', 0x03)
	var bcc byte
	for _, b := range frame[1:] {
		bcc ^= b
	}
	return append(frame, bcc)
}
