package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSingleLine(t *testing.T) {
	values := Extract("1-0:1.8.1*255(0001798.478*kWh)")
	assert.Equal(t, map[string]string{"1.8.1": "0001798.478*kWh"}, values)
}

func TestExtractBlock(t *testing.T) {
	block := `0-0:F.F.0*255(0000000)
1-0:1.8.0*255(0000100.500*kWh)
C.1.1(ISK0MT174-0001)
1-0:32.7.0*255(233.1*V)
0-0:C.7.0*255(5)`

	values := Extract(block)
	assert.Equal(t, "0000100.500*kWh", values["1.8.0"])
	assert.Equal(t, "233.1*V", values["32.7.0"])
	assert.Equal(t, "5", values["C.7.0"])
	assert.Equal(t, "0000000", values["F.F.0"])
	assert.Equal(t, "ISK0MT174-0001", values["C.1.1"])
}

func TestExtractSkipsMalformedLines(t *testing.T) {
	block := `garbage
!
1-0:1.8.0*255(0000001.000*kWh)
(lonely-value)
no-parens-here`

	values := Extract(block)
	assert.Len(t, values, 1)
	assert.Equal(t, "0000001.000*kWh", values["1.8.0"])
}

func TestExtractDuplicateLastWins(t *testing.T) {
	block := "1-0:1.8.0*255(0000001.000*kWh)\n1-0:1.8.0*255(0000002.000*kWh)"
	values := Extract(block)
	assert.Equal(t, "0000002.000*kWh", values["1.8.0"])
}

func TestExtractDeterministic(t *testing.T) {
	block := "1-0:1.8.0*255(0000001.000*kWh)\n0-0:C.7.0*255(5)"
	assert.Equal(t, Extract(block), Extract(block))
}

func TestExtractEmptyBlock(t *testing.T) {
	assert.Empty(t, Extract(""))
}
