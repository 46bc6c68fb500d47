package index

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gfaidx/endian"
	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/internal/hash"
	"github.com/arloliu/gfaidx/section"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func requireIndexEqual(t *testing.T, want, got *Index) {
	t.Helper()

	require.Equal(t, want.Types, got.Types)
	require.Equal(t, want.Source, got.Source)

	require.Equal(t, want.Segments == nil, got.Segments == nil)
	if want.Segments != nil {
		require.Equal(t, slices.Collect(want.Segments.All()), slices.Collect(got.Segments.All()))
	}

	require.Equal(t, want.Paths == nil, got.Paths == nil)
	if want.Paths != nil {
		require.Equal(t, slices.Collect(want.Paths.All()), slices.Collect(got.Paths.All()))
	}

	require.Equal(t, want.Positions == nil, got.Positions == nil)
	if want.Positions != nil {
		require.Equal(t, slices.Collect(want.Positions.Names()), slices.Collect(got.Positions.Names()))
		require.Equal(t, want.Positions.EntryCount(), got.Positions.EntryCount())
		for name := range want.Positions.Names() {
			w, _ := want.Positions.Entries(name)
			g, ok := got.Positions.Entries(name)
			require.True(t, ok)
			require.Equal(t, w, g, name)
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.gfa")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	sources := map[string]string{
		"empty":    empty,
		"scenario": scenarioGFA(t),
		"rich":     richGFA(t),
	}

	for types := format.IndexType(1); types <= format.IndexFull; types++ {
		for name, src := range sources {
			idx, err := Build(src, types)
			require.NoError(t, err)

			for _, ct := range allCompressions {
				for _, big := range []bool{false, true} {
					t.Run(types.String()+"/"+name+"/"+ct.String(), func(t *testing.T) {
						opts := []EncodeOption{WithCompression(ct)}
						if big {
							opts = append(opts, WithBigEndian())
						}

						data, err := Encode(idx, opts...)
						require.NoError(t, err)

						got, err := Decode(data)
						require.NoError(t, err)
						requireIndexEqual(t, idx, got)
					})
				}
			}
		}
	}
}

func TestEncode_UncompressedLayout(t *testing.T) {
	idx, err := Build(scenarioGFA(t), format.IndexSegment)
	require.NoError(t, err)

	data, err := Encode(idx)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	body := data[section.HeaderSize:]

	require.Equal(t, []byte("GFAI"), data[:4])
	require.Equal(t, uint32(2), engine.Uint32(body[0:4]))
	require.Equal(t, uint16(2), engine.Uint16(body[4:6]))
	require.Equal(t, "S1", string(body[6:8]))
	require.Equal(t, uint64(11), engine.Uint64(body[8:16]))
	require.Equal(t, uint32(105), engine.Uint32(body[16:20]))
	require.Equal(t, uint64(100), engine.Uint64(body[20:28]))
}

func TestEncode_InvalidOptions(t *testing.T) {
	idx, err := Build(scenarioGFA(t), format.IndexSegment)
	require.NoError(t, err)

	_, err = Encode(idx, WithCompression(format.CompressionType(42)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = Encode(&Index{})
	require.ErrorIs(t, err, errs.ErrInvalidIndexType)
}

func TestEncode_NilSubIndexWritesEmptySection(t *testing.T) {
	data, err := Encode(&Index{Types: format.IndexFull})
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 0, got.Segments.Len())
	require.Equal(t, 0, got.Paths.Len())
	require.Equal(t, 0, got.Positions.Len())
}

// reseal rewrites the header so that it matches a modified body.
func reseal(t *testing.T, data []byte, body []byte) []byte {
	t.Helper()

	h, err := section.ParseHeader(data)
	require.NoError(t, err)
	h.BodyLength = uint64(len(body))
	h.RawLength = uint64(len(body))
	h.Checksum = hash.Sum(body)

	return append(h.Bytes(), body...)
}

func TestDecode_Errors(t *testing.T) {
	idx, err := Build(richGFA(t), format.IndexFull)
	require.NoError(t, err)
	data, err := Encode(idx)
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		bad := slices.Clone(data)
		bad[0] = 'X'
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrBadMagic)
	})

	t.Run("unsupported version", func(t *testing.T) {
		bad := slices.Clone(data)
		endian.GetLittleEndianEngine().PutUint32(bad[4:8], 7)
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("truncated anywhere", func(t *testing.T) {
		for _, cut := range []int{0, 3, section.HeaderSize - 1, section.HeaderSize, len(data) - 1} {
			_, err := Decode(data[:cut])
			require.ErrorIs(t, err, errs.ErrTruncated, "cut at %d", cut)
		}
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		bad := slices.Clone(data)
		bad[len(bad)-1] ^= 0xff
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := Decode(append(slices.Clone(data), 0))
		require.ErrorIs(t, err, errs.ErrTrailingIndexData)

		body := append(slices.Clone(data[section.HeaderSize:]), 1, 2, 3)
		_, err = Decode(reseal(t, data, body))
		require.ErrorIs(t, err, errs.ErrTrailingIndexData)
	})

	t.Run("declared count past end", func(t *testing.T) {
		body := slices.Clone(data[section.HeaderSize:])
		endian.GetLittleEndianEngine().PutUint32(body[0:4], 1<<20)
		_, err := Decode(reseal(t, data, body))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("body cut inside entry", func(t *testing.T) {
		body := slices.Clone(data[section.HeaderSize : len(data)-5])
		_, err := Decode(reseal(t, data, body))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}

func TestDecode_InvalidPositionData(t *testing.T) {
	idx, err := Build(scenarioGFA(t), format.IndexPosition)
	require.NoError(t, err)
	data, err := Encode(idx)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	// body: path count(4) | name len(2) "P1" | entry count(4) | name len(2) "S1" | orient(1) | start(8) | end(8) | ...
	const firstRecord = 4 + 2 + 2 + 4
	const orientAt = firstRecord + 2 + 2

	t.Run("gap between entries", func(t *testing.T) {
		body := slices.Clone(data[section.HeaderSize:])
		engine.PutUint64(body[orientAt+1+8:], 90)
		_, err := Decode(reseal(t, data, body))
		require.ErrorIs(t, err, errs.ErrInvalidPositionData)
	})

	t.Run("bad orientation", func(t *testing.T) {
		body := slices.Clone(data[section.HeaderSize:])
		body[orientAt] = 7
		_, err := Decode(reseal(t, data, body))
		require.ErrorIs(t, err, errs.ErrInvalidPositionData)
	})
}

func TestSaveLoad(t *testing.T) {
	src := richGFA(t)
	idx, err := Build(src, format.IndexFull)
	require.NoError(t, err)

	dir := t.TempDir()
	out := filepath.Join(dir, "graph.gfai")

	for _, ct := range allCompressions {
		require.NoError(t, Save(idx, out, WithCompression(ct)))

		got, err := Load(out)
		require.NoError(t, err)
		requireIndexEqual(t, idx, got)
		require.NoError(t, got.CheckSource(src))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSaveLoad_IOErrors(t *testing.T) {
	idx, err := Build(scenarioGFA(t), format.IndexSegment)
	require.NoError(t, err)

	err = Save(idx, filepath.Join(t.TempDir(), "no", "such", "dir", "x.gfai"))
	require.True(t, errs.IsIO(err))

	_, err = Load(filepath.Join(t.TempDir(), "missing.gfai"))
	require.True(t, errs.IsIO(err))

	var ioErr *errs.IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "read", ioErr.Op)
}

func TestLoad_FormatErrorIsNotIOError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "junk.gfai")
	require.NoError(t, os.WriteFile(p, []byte(strings.Repeat("not an index ", 10)), 0o600))

	_, err := Load(p)
	require.ErrorIs(t, err, errs.ErrBadMagic)
	require.False(t, errs.IsIO(err))
}

func TestCheckSource_Stale(t *testing.T) {
	src := scenarioGFA(t)
	idx, err := Build(src, format.IndexFull)
	require.NoError(t, err)
	require.NoError(t, idx.CheckSource(src))

	f, err := os.OpenFile(src, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("S\textra\tA\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.ErrorIs(t, idx.CheckSource(src), errs.ErrStaleIndex)
	require.True(t, errs.IsIO(idx.CheckSource(src+".missing")))
}

func TestSummary(t *testing.T) {
	idx, err := Build(richGFA(t), format.IndexSegment|format.IndexPosition)
	require.NoError(t, err)

	s := idx.Summary()
	require.Contains(t, s, "Segment index: 4 entries")
	require.Contains(t, s, "Path index: not built")
	require.Contains(t, s, "Position index: 8 entries across 3 paths")

	info := idx.Info()
	require.Equal(t, "segment+position", info.Types)
	require.Equal(t, 4, *info.SegmentEntries)
	require.Nil(t, info.PathEntries)
	require.Equal(t, 3, *info.PositionPaths)
}
