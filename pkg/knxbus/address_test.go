package knxbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupAddress(t *testing.T) {
	ga, err := ParseGroupAddress("14/1/3")
	require.NoError(t, err)
	assert.Equal(t, GroupAddress{Main: 14, Middle: 1, Sub: 3}, ga)
	assert.Equal(t, "14/1/3", ga.String())
}

func TestParseGroupAddressInvalid(t *testing.T) {
	for _, s := range []string{"", "1/2", "1/2/3/4", "32/0/0", "0/8/0", "0/0/256", "a/b/c"} {
		_, err := ParseGroupAddress(s)
		assert.ErrorIs(t, err, ErrInvalidGroupAddress, "input %q", s)
	}
}

func TestGroupAddressToUint16(t *testing.T) {
	// 14/1/3 = 14<<11 | 1<<8 | 3
	ga := GroupAddress{Main: 14, Middle: 1, Sub: 3}
	assert.Equal(t, uint16(0x7103), ga.ToUint16())

	assert.Equal(t, uint16(0xFFFF), GroupAddress{Main: 31, Middle: 7, Sub: 255}.ToUint16())
	assert.Equal(t, uint16(0), GroupAddress{}.ToUint16())
}

func TestEncodeUint32(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x1B, 0x71, 0x0E}, EncodeUint32(1798414))
	assert.Equal(t, []byte{0x7F, 0xFF, 0xFF, 0xFF}, EncodeUint32(2147483647))
}
