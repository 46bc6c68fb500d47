package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
)

// indexLikeBody builds a body resembling a position section: repeated segment names
// interleaved with fixed-width coordinates.
func indexLikeBody(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("chr1_seg%06d", i%500)
		buf.WriteByte(byte(len(name)))
		buf.WriteByte(0)
		buf.WriteString(name)
		buf.WriteByte(byte(i % 2))
		for j := 0; j < 16; j++ {
			buf.WriteByte(byte((i * 7) >> (j % 8)))
		}
	}

	return buf.Bytes()
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x9))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCodecRoundTrip(t *testing.T) {
	body := indexLikeBody(2000)

	codecs := map[string]Codec{
		"none": NewNoOpCompressor(),
		"zstd": NewZstdCompressor(),
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(body)
			require.NoError(t, err)

			if name != "none" {
				require.Less(t, len(compressed), len(body))
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, body, decompressed)
		})

		t.Run(name+"/empty", func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestLZ4DecompressSized(t *testing.T) {
	body := indexLikeBody(100)
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(body)
	require.NoError(t, err)

	out, err := codec.DecompressSized(compressed, len(body))
	require.NoError(t, err)
	require.Equal(t, body, out)
}

func TestZstdDecompress_Corrupted(t *testing.T) {
	_, err := NewZstdCompressor().Decompress([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	require.Error(t, err)
}

func BenchmarkZstdCompress(b *testing.B) {
	body := indexLikeBody(10000)
	codec := NewZstdCompressor()

	b.SetBytes(int64(len(body)))
	for b.Loop() {
		_, _ = codec.Compress(body)
	}
}
