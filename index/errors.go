package index

import (
	"fmt"
	"strings"
)

// BuildError reports where in the source a build failed.
type BuildError struct {
	Source   string // source file path
	Line     int    // 1-based line number, 0 when unknown
	Offset   int64  // byte offset of the line
	PathName string // path being processed, if any
	Segment  string // segment involved, if any
	Err      error
}

func (e *BuildError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build %s: line %d (offset %d)", e.Source, e.Line, e.Offset)
	if e.PathName != "" {
		fmt.Fprintf(&b, ": path %q", e.PathName)
	}
	if e.Segment != "" {
		fmt.Fprintf(&b, ": segment %q", e.Segment)
	}
	fmt.Fprintf(&b, ": %v", e.Err)

	return b.String()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
