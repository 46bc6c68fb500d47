package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gfaidx/graph"
)

func loadGraph(t *testing.T, content string) *graph.Graph {
	t.Helper()

	g, err := graph.Load(strings.NewReader(content))
	require.NoError(t, err)

	return g
}

func TestCheck_Clean(t *testing.T) {
	g := loadGraph(t, "S\ts1\tACGT\nS\ts2\tGG\nL\ts1\t+\ts2\t-\t0M\nP\tp1\ts1+,s2-\t*\n")

	r := Check(g)
	require.True(t, r.Passed())
	require.Empty(t, r.Errors)
	require.Empty(t, r.Warnings)
	require.Equal(t, 2, r.Segments)
	require.Equal(t, 1, r.Links)
	require.Equal(t, 1, r.Paths)

	out := r.Format(false)
	require.Contains(t, out, "=== Validation Results ===")
	require.Contains(t, out, "✓ No issues found")
	require.Contains(t, out, "✓ Validation passed")
}

func TestCheck_UndefinedReferences(t *testing.T) {
	content := "S\ts1\tACGT\n" +
		"L\ts1\t+\tghost\t+\t0M\n" +
		"P\tp1\ts1+,missing-,s1+\t*\n" +
		"W\tHG002\t1\tchr1\t*\t*\t>s1<gone\n"
	g := loadGraph(t, content)

	r := Check(g)
	require.False(t, r.Passed())
	require.Len(t, r.Errors, 3)
	require.Equal(t, "Link references undefined segment: ghost", r.Errors[0].Message)
	require.Equal(t, int64(10), r.Errors[0].Offset)
	require.Equal(t, "Path 'p1' references undefined segment: missing", r.Errors[1].Message)
	require.Equal(t, "Path 'HG002#1#chr1' references undefined segment: gone", r.Errors[2].Message)
	require.Equal(t, SeverityError, r.Errors[0].Severity)

	out := r.Format(false)
	require.Contains(t, out, "Errors (3):")
	require.Contains(t, out, "  ✗ Link references undefined segment: ghost")
	require.Contains(t, out, "✗ Validation failed with 3 errors")
}

func TestCheck_PlaceholderSequence(t *testing.T) {
	g := loadGraph(t, "S\ts1\t*\tLN:i:10\nS\ts2\tAC\n")

	r := Check(g)
	require.True(t, r.Passed())
	require.Len(t, r.Warnings, 1)
	require.Equal(t, "Segment 's1' has empty/placeholder sequence", r.Warnings[0].Message)
	require.Equal(t, SeverityWarning, r.Warnings[0].Severity)

	out := r.Format(false)
	require.Contains(t, out, "Warnings (1):")
	require.Contains(t, out, "  ⚠ Segment 's1'")
	require.Contains(t, out, "✓ Validation passed")
}

func TestReport_FormatLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("S\ts1\tA\n")
	for i := 0; i < 8; i++ {
		sb.WriteString("L\ts1\t+\tx\t+\t0M\n")
	}
	r := Check(loadGraph(t, sb.String()))
	require.Len(t, r.Errors, 8)

	short := r.Format(false)
	require.Equal(t, DefaultListLimit, strings.Count(short, "  ✗ "))
	require.Contains(t, short, "  ... and 3 more errors")

	full := r.Format(true)
	require.Equal(t, 8, strings.Count(full, "  ✗ "))
	require.NotContains(t, full, "more errors")
}

func TestSeverity_String(t *testing.T) {
	require.Equal(t, "error", SeverityError.String())
	require.Equal(t, "warning", SeverityWarning.String())
	require.Equal(t, "unknown", Severity(0).String())

	text, err := SeverityWarning.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "warning", string(text))
}
