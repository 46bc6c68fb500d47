// Package validate checks an in-memory GFA graph for dangling references and
// placeholder sequences.
//
// Errors are references to segments that were never defined. Warnings are segments
// without bases, either '*' or empty. A graph that only has warnings still passes.
package validate

import (
	"fmt"
	"strings"

	"github.com/arloliu/gfaidx/graph"
)

// DefaultListLimit is how many issues of each severity Format lists when not verbose.
const DefaultListLimit = 5

// Severity classifies an Issue.
type Severity uint8

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is one validation finding. Offset is the byte offset of the record that
// raised it.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Offset   int64    `json:"offset" yaml:"offset"`
	Message  string   `json:"message" yaml:"message"`
}

// Report is the result of Check.
type Report struct {
	Segments int     `json:"segments" yaml:"segments"`
	Links    int     `json:"links" yaml:"links"`
	Paths    int     `json:"paths" yaml:"paths"`
	Errors   []Issue `json:"errors" yaml:"errors"`
	Warnings []Issue `json:"warnings" yaml:"warnings"`
}

// Passed reports whether the graph has no errors.
func (r *Report) Passed() bool {
	return len(r.Errors) == 0
}

// Check validates g.
//
// Issues are reported in file order per kind: links first, then paths and walks in
// step order, then segments.
func Check(g *graph.Graph) *Report {
	r := &Report{
		Segments: g.SegmentCount(),
		Links:    g.LinkCount(),
		Paths:    g.PathCount(),
		Errors:   []Issue{},
		Warnings: []Issue{},
	}

	defined := func(name string) bool {
		_, ok := g.Segment(name)
		return ok
	}

	for _, l := range g.Links() {
		for _, name := range [2]string{l.From, l.To} {
			if !defined(name) {
				r.Errors = append(r.Errors, Issue{
					Severity: SeverityError,
					Offset:   l.Loc.Offset,
					Message:  "Link references undefined segment: " + name,
				})
			}
		}
	}

	for name, p := range g.Paths() {
		for _, st := range p.Steps {
			if !defined(st.Segment) {
				r.Errors = append(r.Errors, Issue{
					Severity: SeverityError,
					Offset:   p.Loc.Offset,
					Message:  fmt.Sprintf("Path '%s' references undefined segment: %s", name, st.Segment),
				})
			}
		}
	}

	for name, seg := range g.Segments() {
		if seg.Sequence == "" {
			r.Warnings = append(r.Warnings, Issue{
				Severity: SeverityWarning,
				Offset:   seg.Loc.Offset,
				Message:  fmt.Sprintf("Segment '%s' has empty/placeholder sequence", name),
			})
		}
	}

	return r
}

// Format renders the report as text. Unless verbose, at most DefaultListLimit issues
// of each severity are listed.
func (r *Report) Format(verbose bool) string {
	var b strings.Builder

	b.WriteString("=== Validation Results ===\n\n")
	fmt.Fprintf(&b, "Segments: %d\n", r.Segments)
	fmt.Fprintf(&b, "Links: %d\n", r.Links)
	fmt.Fprintf(&b, "Paths: %d\n\n", r.Paths)

	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		b.WriteString("✓ No issues found\n")
	} else {
		writeIssues(&b, "Errors", "errors", "✗", r.Errors, verbose)
		writeIssues(&b, "Warnings", "warnings", "⚠", r.Warnings, verbose)
	}

	if r.Passed() {
		b.WriteString("\n✓ Validation passed\n")
	} else {
		fmt.Fprintf(&b, "\n✗ Validation failed with %d errors\n", len(r.Errors))
	}

	return b.String()
}

func writeIssues(b *strings.Builder, title, noun, mark string, issues []Issue, verbose bool) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(b, "%s (%d):\n", title, len(issues))

	shown := issues
	if !verbose && len(shown) > DefaultListLimit {
		shown = shown[:DefaultListLimit]
	}
	for _, issue := range shown {
		fmt.Fprintf(b, "  %s %s\n", mark, issue.Message)
	}
	if rest := len(issues) - len(shown); rest > 0 {
		fmt.Fprintf(b, "  ... and %d more %s\n", rest, noun)
	}
	b.WriteString("\n")
}
