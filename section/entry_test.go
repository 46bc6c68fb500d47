package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gfaidx/endian"
	"github.com/arloliu/gfaidx/errs"
)

func TestEntries_RoundTrip(t *testing.T) {
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		seg := SegmentEntry{Name: "s1", Offset: 11, ByteLength: 9, SequenceLength: 4}
		path := PathEntry{Name: "HG002#1#chr1", Offset: 99, ByteLength: 30, StepCount: 3, TotalLength: 1 << 40}
		pos := PositionRecord{SegmentName: "s2", Orientation: 1, Start: 4, End: 8}

		var (
			b   []byte
			err error
		)
		b, err = AppendCount(b, engine, 3)
		require.NoError(t, err)
		b, err = seg.AppendTo(b, engine)
		require.NoError(t, err)
		b, err = path.AppendTo(b, engine)
		require.NoError(t, err)
		b, err = pos.AppendTo(b, engine)
		require.NoError(t, err)

		r := NewReader(b, engine)
		n, err := r.Count("entry", 1)
		require.NoError(t, err)
		require.Equal(t, 3, n)

		gotSeg, err := ParseSegmentEntry(r)
		require.NoError(t, err)
		require.Equal(t, seg, gotSeg)

		gotPath, err := ParsePathEntry(r)
		require.NoError(t, err)
		require.Equal(t, path, gotPath)

		gotPos, err := ParsePositionRecord(r)
		require.NoError(t, err)
		require.Equal(t, pos, gotPos)

		require.Equal(t, 0, r.Remaining())
		require.Equal(t, len(b), r.Pos())
	}
}

func TestEntries_Sizes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	seg := SegmentEntry{}
	b, err := seg.AppendTo(nil, engine)
	require.NoError(t, err)
	require.Len(t, b, MinSegmentEntrySize)

	path := PathEntry{}
	b, err = path.AppendTo(nil, engine)
	require.NoError(t, err)
	require.Len(t, b, MinPathEntrySize)

	pos := PositionRecord{}
	b, err = pos.AppendTo(nil, engine)
	require.NoError(t, err)
	require.Len(t, b, MinPositionRecordSize)
}

func TestReader_Truncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	seg := SegmentEntry{Name: "segment", Offset: 1, ByteLength: 2, SequenceLength: 3}
	full, err := seg.AppendTo(nil, engine)
	require.NoError(t, err)

	for cut := 0; cut < len(full); cut++ {
		_, err := ParseSegmentEntry(NewReader(full[:cut], engine))
		require.ErrorIs(t, err, errs.ErrTruncated, "cut at %d", cut)
	}
}

func TestReader_CountBeyondData(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	b := engine.AppendUint32(nil, 1_000_000)

	_, err := NewReader(b, engine).Count("segment", MinSegmentEntrySize)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestAppendName_TooLong(t *testing.T) {
	_, err := AppendName(nil, endian.GetLittleEndianEngine(), strings.Repeat("x", MaxNameLen+1))
	require.ErrorIs(t, err, errs.ErrNameTooLong)

	seg := SegmentEntry{Name: strings.Repeat("x", MaxNameLen+1)}
	_, err = seg.AppendTo(nil, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrNameTooLong)
}
