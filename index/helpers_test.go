package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeGFA(t *testing.T, lines ...string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "graph.gfa")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	return p
}

// scenarioGFA has S1 (100 bp), S2 (50 bp) and a path P1 visiting S1+,S2+.
func scenarioGFA(t *testing.T) string {
	t.Helper()

	return writeGFA(t,
		"H\tVN:Z:1.0",
		"S\tS1\t"+strings.Repeat("A", 100),
		"S\tS2\t*\tLN:i:50",
		"L\tS1\t+\tS2\t+\t0M",
		"P\tP1\tS1+,S2+\t*",
	)
}

// richGFA mixes paths, walks and orientations.
func richGFA(t *testing.T) string {
	t.Helper()

	return writeGFA(t,
		"H\tVN:Z:1.0",
		"S\ts1\tACGT",
		"# a comment",
		"S\ts2\tGGGGGG",
		"S\ts3\t*\tLN:i:10",
		"L\ts1\t+\ts2\t-\t0M",
		"P\tp1\ts1+,s2-,s3+\t*",
		"P\tp2\ts3-,s1+\t*",
		"W\tHG002\t1\tchr1\t0\t20\t>s1<s2>s3",
		"S\ts4\tT",
	)
}
