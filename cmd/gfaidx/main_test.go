package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gfaidx/errs"
)

const testGFA = "H\tVN:Z:1.0\n" +
	"S\ts1\tACGTACGT\n" +
	"S\ts2\tGGGG\n" +
	"S\ts3\t*\tLN:i:6\n" +
	"L\ts1\t+\ts2\t+\t0M\n" +
	"L\ts2\t+\ts3\t-\t0M\n" +
	"P\tp1\ts1+,s2+,s3-\t*\n" +
	"W\tHG002\t1\tchr1\t0\t12\t>s2<s1\n"

func writeGFA(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "graph.gfa")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func buildIndex(t *testing.T, src string, extra ...string) string {
	t.Helper()

	idxPath := filepath.Join(t.TempDir(), "graph.gfaidx")
	_, err := run(t, append([]string{"index", "-i", src, "-o", idxPath}, extra...)...)
	require.NoError(t, err)

	return idxPath
}

func TestStatsCommand(t *testing.T) {
	src := writeGFA(t, testGFA)

	out, err := run(t, "stats", "-i", src)
	require.NoError(t, err)
	require.Contains(t, out, "=== GFA Graph Statistics ===")
	require.Contains(t, out, "--- Path Statistics ---")

	out, err = run(t, "stats", "-i", src, "-f", "json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.EqualValues(t, 3, got["segment_count"])
	require.EqualValues(t, 18, got["total_sequence_length"])

	dest := filepath.Join(t.TempDir(), "stats.yaml")
	out, err = run(t, "stats", "-i", src, "-f", "yaml", "-o", dest)
	require.NoError(t, err)
	require.Contains(t, out, "Statistics written to: "+dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Contains(t, string(data), "segment_count: 3")
}

func TestIndexCommand(t *testing.T) {
	src := writeGFA(t, testGFA)
	idxPath := filepath.Join(t.TempDir(), "graph.gfaidx")

	out, err := run(t, "index", "-i", src, "-o", idxPath, "-c", "zstd")
	require.NoError(t, err)
	require.Contains(t, out, "=== Index Summary ===")
	require.Contains(t, out, "Segment index: 3 entries")
	require.Contains(t, out, "Path index: 2 entries")
	require.Contains(t, out, "Index saved to: "+idxPath)
	require.FileExists(t, idxPath)

	t.Run("default output path", func(t *testing.T) {
		src := writeGFA(t, testGFA)
		_, err := run(t, "index", "-i", src, "-t", "segment")
		require.NoError(t, err)
		require.FileExists(t, src+DefaultIndexExt)
	})

	t.Run("multiple inputs", func(t *testing.T) {
		a, b := writeGFA(t, testGFA), writeGFA(t, testGFA)
		out, err := run(t, "index", "-i", a, "-i", b, "-j", "2", "-f", "json")
		require.NoError(t, err)

		var reports []indexResult
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 2)
		require.Equal(t, a, reports[0].Source)
		require.Equal(t, b+DefaultIndexExt, reports[1].Output)
	})

	t.Run("output with multiple inputs", func(t *testing.T) {
		_, err := run(t, "index", "-i", src, "-i", src, "-o", idxPath)
		require.Error(t, err)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := run(t, "index", "-i", src, "-t", "graph")
		require.ErrorIs(t, err, errs.ErrInvalidIndexType)
	})

	t.Run("undefined segment", func(t *testing.T) {
		bad := writeGFA(t, "S\ts1\tA\nP\tp1\ts1+,ghost+\t*\n")
		_, err := run(t, "index", "-i", bad)
		require.ErrorIs(t, err, errs.ErrUndefinedSegment)

		out, err := run(t, "index", "-i", bad, "--lenient")
		require.NoError(t, err)
		require.Contains(t, out, "Warnings (1):")
	})
}

func TestQueryCommands(t *testing.T) {
	src := writeGFA(t, testGFA)
	idxPath := buildIndex(t, src, "-c", "lz4")
	base := []string{"query", "-i", src, "-x", idxPath}
	query := func(args ...string) string {
		t.Helper()
		out, err := run(t, append(append([]string{}, base...), args...)...)
		require.NoError(t, err)

		return out
	}

	out := query("segment", "-n", "s1")
	require.Contains(t, out, "Segment: s1")
	require.Contains(t, out, "  Sequence length: 8 bp")
	require.Contains(t, out, "  File offset: 11")

	out = query("segment", "-n", "nope")
	require.Contains(t, out, "Segment 'nope' not found in index")

	out = query("path", "-n", "p1")
	require.Contains(t, out, "Path: p1")
	require.Contains(t, out, "  Steps: 3")
	require.Contains(t, out, "  Total length: 18 bp")

	// p1: s1 [0,8) s2 [8,12) s3 [12,18)
	out = query("position", "-p", "p1", "--pos", "9")
	require.Contains(t, out, "Position 9 in path 'p1':")
	require.Contains(t, out, "  Segment: s2+")
	require.Contains(t, out, "  Segment range: 8 - 12")
	require.Contains(t, out, "  Step index: 1")

	out = query("position", "-p", "p1", "--pos", "18")
	require.Contains(t, out, "Position 18 not found in path 'p1'")

	out = query("position", "-p", "HG002#1#chr1", "--pos", "4", "-f", "json")
	var pos positionResult
	require.NoError(t, json.Unmarshal([]byte(out), &pos))
	require.Equal(t, "s1", pos.Segment)
	require.Equal(t, "-", pos.Orientation)
	require.Equal(t, 1, pos.StepIndex)
	require.Equal(t, uint64(0), pos.Offset)

	out = query("range", "-p", "p1", "--start", "7", "--end", "13", "-f", "json")
	var rng []positionResult
	require.NoError(t, json.Unmarshal([]byte(out), &rng))
	require.Len(t, rng, 3)
	require.Equal(t, "s3", rng[2].Segment)

	out = query("list-segments")
	require.Contains(t, out, "Indexed segments (3):")
	require.Contains(t, out, "  s3\n")

	out = query("list-paths", "-f", "json")
	var list map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Equal(t, []string{"p1", "HG002#1#chr1"}, list["paths"])
}

func TestQueryCommand_IndexNotBuilt(t *testing.T) {
	src := writeGFA(t, testGFA)
	idxPath := buildIndex(t, src, "-t", "segment")

	_, err := run(t, "query", "-i", src, "-x", idxPath, "position", "-p", "p1", "--pos", "0")
	require.ErrorIs(t, err, errs.ErrIndexNotBuilt)

	_, err = run(t, "query", "-i", src, "-x", idxPath, "path", "-n", "p1")
	require.ErrorIs(t, err, errs.ErrIndexNotBuilt)
}

func TestQueryCommand_StaleSource(t *testing.T) {
	src := writeGFA(t, testGFA)
	idxPath := buildIndex(t, src)

	require.NoError(t, os.WriteFile(src, []byte(testGFA+"S\ts4\tA\n"), 0o644))

	out, err := run(t, "query", "-i", src, "-x", idxPath, "segment", "-n", "s1")
	require.NoError(t, err)
	require.Contains(t, out, "Segment: s1")

	_, err = run(t, "query", "-i", src, "-x", idxPath, "--strict", "segment", "-n", "s1")
	require.ErrorIs(t, err, errs.ErrStaleIndex)
}

func TestIndexInfoCommand(t *testing.T) {
	src := writeGFA(t, testGFA)
	idxPath := buildIndex(t, src, "-t", "segment+position")

	out, err := run(t, "index-info", "-x", idxPath)
	require.NoError(t, err)
	require.Contains(t, out, "Segment index: 3 entries")
	require.Contains(t, out, "Path index: not built")
	require.Contains(t, out, "Position index: 5 entries across 2 paths")

	out, err = run(t, "index-info", "-x", idxPath, "-f", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "segment_entries: 3")
	require.NotContains(t, out, "path_entries")

	_, err = run(t, "index-info", "-x", src)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "-i", writeGFA(t, testGFA))
	require.NoError(t, err)
	require.Contains(t, out, "Warnings (1):")
	require.Contains(t, out, "✓ Validation passed")

	bad := writeGFA(t, "S\ts1\tA\nL\ts1\t+\tx\t+\t0M\n")
	out, err = run(t, "validate", "-i", bad)
	require.NoError(t, err)
	require.Contains(t, out, "✗ Validation failed with 1 errors")

	_, err = run(t, "validate", "-i", filepath.Join(t.TempDir(), "missing.gfa"))
	require.True(t, errs.IsIO(err))
}

func TestConfigFile(t *testing.T) {
	src := writeGFA(t, testGFA)
	cfgPath := filepath.Join(t.TempDir(), "gfaidx.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\nindex:\n  type: segment\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "index", "-i", src)
	require.NoError(t, err)

	var reports []indexResult
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	require.Equal(t, "segment", reports[0].Info.Types)
}
