package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForBigEndian(t *testing.T) {
	require.False(t, IsBigEndian(ForBigEndian(false)))
	require.True(t, IsBigEndian(ForBigEndian(true)))
}

func TestEngineRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint64(nil, 0x0102030405060708)
		buf = engine.AppendUint32(buf, 0xA0B0C0D0)
		buf = engine.AppendUint16(buf, 0xBEEF)

		require.Len(t, buf, 14)
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf[0:8]))
		require.Equal(t, uint32(0xA0B0C0D0), engine.Uint32(buf[8:12]))
		require.Equal(t, uint16(0xBEEF), engine.Uint16(buf[12:14]))
	}

	le := GetLittleEndianEngine().AppendUint16(nil, 1)
	be := GetBigEndianEngine().AppendUint16(nil, 1)
	require.Equal(t, []byte{1, 0}, le)
	require.Equal(t, []byte{0, 1}, be)
}
