package query

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/gfa"
	"github.com/arloliu/gfaidx/index"
)

func writeGFA(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	p := filepath.Join(dir, "graph.gfa")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\r\n")+"\r\n"), 0o600))

	return p
}

func scenario(t *testing.T, types format.IndexType, opts ...index.BuildOption) (string, string) {
	t.Helper()

	dir := t.TempDir()
	src := writeGFA(t, dir,
		"H\tVN:Z:1.0",
		"S\tS1\t"+strings.Repeat("C", 100),
		"S\tS2\t*\tLN:i:50",
		"S\tS3\tAC",
		"L\tS1\t+\tS2\t+\t0M",
		"P\tP1\tS1+,S2+\t*",
		"P\tP2\tS3-,S1+,S3+\t*",
		"W\tHG002\t2\tchr9\t*\t*\t<S2>S3",
	)

	idx, err := index.Build(src, types, opts...)
	require.NoError(t, err)

	out := filepath.Join(dir, "graph.gfai")
	require.NoError(t, index.Save(idx, out, index.WithCompression(format.CompressionZstd)))

	return out, src
}

func openScenario(t *testing.T, types format.IndexType) *Engine {
	t.Helper()

	idxPath, src := scenario(t, types)
	eng, err := Open(idxPath, src)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, eng.Close()) })
	require.NoError(t, eng.Stale())

	return eng
}

func TestQueryPosition_Scenario(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	e, ok := eng.QueryPosition("P1", 100)
	require.True(t, ok)
	require.Equal(t, "S2", e.SegmentName)
	require.Equal(t, uint64(100), e.Start)
	require.Equal(t, uint64(150), e.End)
	require.Equal(t, 1, e.StepIndex)

	e, ok = eng.QueryPosition("P1", 99)
	require.True(t, ok)
	require.Equal(t, "S1", e.SegmentName)

	e, ok = eng.QueryPosition("P1", 0)
	require.True(t, ok)
	require.Equal(t, "S1", e.SegmentName)

	_, ok = eng.QueryPosition("P1", 150)
	require.False(t, ok)
}

func TestQueryPosition_OutOfRange(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	for _, c := range []int64{-1, -1000, 150, 151, 1 << 40} {
		_, ok := eng.QueryPosition("P1", c)
		require.False(t, ok, "coord %d", c)
	}

	_, ok := eng.QueryPosition("nope", 0)
	require.False(t, ok)
}

func TestQueryPosition_Partition(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	for name := range eng.ListPaths() {
		info, ok := eng.PathInfo(name)
		require.True(t, ok)

		for c := int64(0); c < int64(info.TotalLength); c++ {
			e, ok := eng.QueryPosition(name, c)
			require.True(t, ok, "%s:%d", name, c)
			require.True(t, e.Contains(uint64(c)))
			require.Equal(t, name, e.PathName)
		}
		_, ok = eng.QueryPosition(name, int64(info.TotalLength))
		require.False(t, ok)
	}
}

func TestQueryPosition_SkipsZeroLengthSteps(t *testing.T) {
	dir := t.TempDir()
	src := writeGFA(t, dir, "S\ta\tACGT", "P\tp\ta+,ghost+,a-\t*")

	idx, err := index.Build(src, format.IndexFull, index.WithLenientReferences())
	require.NoError(t, err)

	f, err := os.Open(src)
	require.NoError(t, err)
	defer f.Close()

	eng, err := New(idx, f)
	require.NoError(t, err)

	e, ok := eng.QueryPosition("p", 4)
	require.True(t, ok)
	require.Equal(t, 2, e.StepIndex)
	require.Equal(t, gfa.Reverse, e.Orientation)

	got := eng.QueryRange("p", 0, 8)
	require.Len(t, got, 2)
	require.Equal(t, 0, got[0].StepIndex)
	require.Equal(t, 2, got[1].StepIndex)
}

func TestQueryRange(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	got := eng.QueryRange("P2", 1, 103)
	require.Len(t, got, 3)
	require.Equal(t, []string{"S3", "S1", "S3"}, []string{got[0].SegmentName, got[1].SegmentName, got[2].SegmentName})

	got = eng.QueryRange("P2", 2, 102)
	require.Len(t, got, 1)
	require.Equal(t, "S1", got[0].SegmentName)

	got = eng.QueryRange("P2", -5, 1)
	require.Len(t, got, 1)

	require.Empty(t, eng.QueryRange("P2", 10, 10))
	require.Empty(t, eng.QueryRange("P2", 104, 200))
	require.Empty(t, eng.QueryRange("nope", 0, 10))
}

func TestGetSegment_Idempotent(t *testing.T) {
	idxPath, src := scenario(t, format.IndexFull)
	eng, err := Open(idxPath, src)
	require.NoError(t, err)
	defer eng.Close()

	data, err := os.ReadFile(src)
	require.NoError(t, err)

	lr := gfa.NewLineReader(bytes.NewReader(data))
	defer lr.Close()
	for {
		line, err := lr.Next()
		if err != nil {
			break
		}

		rec, err := gfa.ParseLine(line.Text, line.Offset)
		require.NoError(t, err)
		want, ok := rec.(*gfa.Segment)
		if !ok {
			continue
		}

		for range 2 {
			got, found, err := eng.GetSegment(want.Name)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, want, got)
		}
	}

	_, found, err := eng.GetSegment("missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestGetPath(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	p, found, err := eng.GetPath("P2")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, p.Steps, 3)
	require.Equal(t, gfa.Reverse, p.Steps[0].Orientation)

	w, found, err := eng.GetPath("HG002#2#chr9")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []gfa.Step{{Segment: "S2", Orientation: gfa.Reverse}, {Segment: "S3", Orientation: gfa.Forward}}, w.Steps)

	_, found, err = eng.GetPath("missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestLists(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	var segs []string
	for name := range eng.ListSegments() {
		segs = append(segs, name)
	}
	require.Equal(t, []string{"S1", "S2", "S3"}, segs)

	var paths []string
	for name := range eng.ListPaths() {
		paths = append(paths, name)
	}
	require.Equal(t, []string{"P1", "P2", "HG002#2#chr9"}, paths)

	info, ok := eng.SegmentInfo("S2")
	require.True(t, ok)
	require.Equal(t, uint64(50), info.SequenceLength)

	pi, ok := eng.PathInfo("P1")
	require.True(t, ok)
	require.Equal(t, uint64(150), pi.TotalLength)
}

func TestMissingSubIndex(t *testing.T) {
	eng := openScenario(t, format.IndexPosition)

	_, _, err := eng.GetSegment("S1")
	require.ErrorIs(t, err, errs.ErrIndexNotBuilt)
	_, _, err = eng.GetPath("P1")
	require.ErrorIs(t, err, errs.ErrIndexNotBuilt)

	for range eng.ListSegments() {
		t.Fatal("no segments expected")
	}

	var paths []string
	for name := range eng.ListPaths() {
		paths = append(paths, name)
	}
	require.Len(t, paths, 3)

	_, ok := eng.SegmentInfo("S1")
	require.False(t, ok)
	_, ok = eng.PathInfo("P1")
	require.False(t, ok)

	seg := openScenario(t, format.IndexSegment)
	_, ok = seg.QueryPosition("P1", 0)
	require.False(t, ok)
	require.Nil(t, seg.QueryRange("P1", 0, 10))
}

func TestStaleAdvisory(t *testing.T) {
	idxPath, src := scenario(t, format.IndexFull)

	// Appending keeps every indexed offset valid but changes the size.
	f, err := os.OpenFile(src, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("S\tS4\tGATTACA\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	eng, err := Open(idxPath, src)
	require.NoError(t, err)
	defer eng.Close()
	require.ErrorIs(t, eng.Stale(), errs.ErrStaleIndex)

	seg, found, err := eng.GetSegment("S2")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(50), seg.Length)

	_, err = Open(idxPath, src, WithStrictSource())
	require.ErrorIs(t, err, errs.ErrStaleIndex)

	eng2, err := Open(idxPath, src, WithoutStaleCheck())
	require.NoError(t, err)
	require.NoError(t, eng2.Stale())
	require.NoError(t, eng2.Close())
}

func TestStaleSourceRewritten(t *testing.T) {
	idxPath, src := scenario(t, format.IndexSegment)
	require.NoError(t, os.WriteFile(src, []byte("S\tother\tA\n"), 0o600))

	eng, err := Open(idxPath, src)
	require.NoError(t, err)
	defer eng.Close()

	_, _, err = eng.GetSegment("S3")
	require.Error(t, err)
}

func TestOpenErrors(t *testing.T) {
	idxPath, src := scenario(t, format.IndexFull)

	_, err := Open(filepath.Join(t.TempDir(), "missing.gfai"), src)
	require.True(t, errs.IsIO(err))

	_, err = Open(idxPath, filepath.Join(t.TempDir(), "missing.gfa"))
	require.True(t, errs.IsIO(err))

	_, err = Open(src, src)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestConcurrentQueries(t *testing.T) {
	eng := openScenario(t, format.IndexFull)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				name := []string{"S1", "S2", "S3"}[(g+i)%3]
				seg, found, err := eng.GetSegment(name)
				if err != nil || !found || seg.Name != name {
					t.Errorf("GetSegment(%s) = %v, %v, %v", name, seg, found, err)
					return
				}
				if _, ok := eng.QueryPosition("P1", int64(i%150)); !ok {
					t.Errorf("QueryPosition(P1, %d) missed", i%150)
					return
				}
			}
		}()
	}
	wg.Wait()
}
