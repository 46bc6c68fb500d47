package index

import (
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/gfa"
	"github.com/arloliu/gfaidx/section"
)

type (
	// SegmentEntry locates one S line: byte offset, byte length, sequence length.
	SegmentEntry = section.SegmentEntry
	// PathEntry locates one P or W line and records its step count and total length.
	PathEntry = section.PathEntry
)

// PositionEntry is the coordinate range one path step covers.
//
// [Start, End) is half-open and End-Start is the length of the segment. Consecutive
// entries of a path are contiguous: entries[i].End == entries[i+1].Start.
type PositionEntry struct {
	PathName    string
	SegmentName string
	Orientation gfa.Orientation
	Start       uint64
	End         uint64
	StepIndex   int
}

// Len returns End - Start.
func (e PositionEntry) Len() uint64 {
	return e.End - e.Start
}

// Contains reports whether coord falls inside [Start, End).
func (e PositionEntry) Contains(coord uint64) bool {
	return e.Start <= coord && coord < e.End
}

// table is a name-keyed list that remembers insertion order.
type table[E any] struct {
	entries []E
	byName  map[string]int
	nameOf  func(*E) string
}

func newTable[E any](capacity int, nameOf func(*E) string) table[E] {
	return table[E]{
		entries: make([]E, 0, capacity),
		byName:  make(map[string]int, capacity),
		nameOf:  nameOf,
	}
}

func (t *table[E]) add(e E) bool {
	name := t.nameOf(&e)
	if _, ok := t.byName[name]; ok {
		return false
	}
	t.byName[name] = len(t.entries)
	t.entries = append(t.entries, e)

	return true
}

// Get returns the entry called name.
func (t *table[E]) Get(name string) (E, bool) {
	i, ok := t.byName[name]
	if !ok {
		var zero E
		return zero, false
	}

	return t.entries[i], true
}

// Len returns the number of entries.
func (t *table[E]) Len() int {
	return len(t.entries)
}

// Names iterates over entry names in insertion order.
func (t *table[E]) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range t.entries {
			if !yield(t.nameOf(&t.entries[i])) {
				return
			}
		}
	}
}

// All iterates over entries in insertion order.
func (t *table[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// SegmentIndex maps segment names to the location of their S line.
type SegmentIndex struct {
	table[SegmentEntry]
}

func newSegmentIndex(capacity int) *SegmentIndex {
	return &SegmentIndex{newTable(capacity, func(e *SegmentEntry) string { return e.Name })}
}

// PathIndex maps path names (walks included) to the location of their P or W line.
type PathIndex struct {
	table[PathEntry]
}

func newPathIndex(capacity int) *PathIndex {
	return &PathIndex{newTable(capacity, func(e *PathEntry) string { return e.Name })}
}

// PositionIndex maps each path name to its ordered, contiguous position entries.
type PositionIndex struct {
	paths      table[pathPositions]
	entryCount int
}

type pathPositions struct {
	name    string
	entries []PositionEntry
}

func newPositionIndex(capacity int) *PositionIndex {
	return &PositionIndex{paths: newTable(capacity, func(e *pathPositions) string { return e.name })}
}

func (p *PositionIndex) addPath(name string, entries []PositionEntry) bool {
	if !p.paths.add(pathPositions{name: name, entries: entries}) {
		return false
	}
	p.entryCount += len(entries)

	return true
}

// Entries returns the position entries of path, ordered by Start. The slice must
// not be modified.
func (p *PositionIndex) Entries(path string) ([]PositionEntry, bool) {
	pp, ok := p.paths.Get(path)
	if !ok {
		return nil, false
	}

	return pp.entries, true
}

// Len returns the number of paths.
func (p *PositionIndex) Len() int {
	return p.paths.Len()
}

// Names iterates over path names in insertion order.
func (p *PositionIndex) Names() iter.Seq[string] {
	return p.paths.Names()
}

// EntryCount returns the number of position entries across all paths.
func (p *PositionIndex) EntryCount() int {
	return p.entryCount
}

// Fingerprint identifies the exact source file an index was built from.
type Fingerprint struct {
	Size     uint64 // byte size
	ModTime  int64  // modification time, unix nanoseconds
	HeadHash uint64 // xxHash64 of the first 64 KiB
}

// Warning is a non-fatal problem met while building.
type Warning struct {
	Line   int
	Offset int64
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d (offset %d): %v", w.Line, w.Offset, w.Err)
}

// Index is an immutable snapshot of the sub-indices built over one source file.
//
// Only the sub-indices selected by Types are non-nil.
type Index struct {
	Types     format.IndexType
	Source    Fingerprint
	Segments  *SegmentIndex
	Paths     *PathIndex
	Positions *PositionIndex
	// Warnings is filled by Build only; it is not stored on disk.
	Warnings []Warning
}

// Summary renders the per sub-index counts.
func (idx *Index) Summary() string {
	var b strings.Builder
	b.WriteString("=== Index Summary ===\n\n")
	fmt.Fprintf(&b, "Index types: %s\n", idx.Types)
	fmt.Fprintf(&b, "Source size: %d bytes\n\n", idx.Source.Size)

	if idx.Segments != nil {
		fmt.Fprintf(&b, "Segment index: %d entries\n", idx.Segments.Len())
	} else {
		b.WriteString("Segment index: not built\n")
	}

	if idx.Paths != nil {
		fmt.Fprintf(&b, "Path index: %d entries\n", idx.Paths.Len())
	} else {
		b.WriteString("Path index: not built\n")
	}

	if idx.Positions != nil {
		fmt.Fprintf(&b, "Position index: %d entries across %d paths\n",
			idx.Positions.EntryCount(), idx.Positions.Len())
	} else {
		b.WriteString("Position index: not built\n")
	}

	return b.String()
}

// Info is the structured form of Summary, for JSON and YAML output.
type Info struct {
	Types           string `json:"types" yaml:"types"`
	SourceSize      uint64 `json:"source_size" yaml:"source_size"`
	SourceModTime   int64  `json:"source_mtime_ns" yaml:"source_mtime_ns"`
	SegmentEntries  *int   `json:"segment_entries,omitempty" yaml:"segment_entries,omitempty"`
	PathEntries     *int   `json:"path_entries,omitempty" yaml:"path_entries,omitempty"`
	PositionEntries *int   `json:"position_entries,omitempty" yaml:"position_entries,omitempty"`
	PositionPaths   *int   `json:"position_paths,omitempty" yaml:"position_paths,omitempty"`
}

// Info returns the structured summary of idx.
func (idx *Index) Info() Info {
	info := Info{
		Types:         idx.Types.String(),
		SourceSize:    idx.Source.Size,
		SourceModTime: idx.Source.ModTime,
	}

	intPtr := func(v int) *int { return &v }
	if idx.Segments != nil {
		info.SegmentEntries = intPtr(idx.Segments.Len())
	}
	if idx.Paths != nil {
		info.PathEntries = intPtr(idx.Paths.Len())
	}
	if idx.Positions != nil {
		info.PositionEntries = intPtr(idx.Positions.EntryCount())
		info.PositionPaths = intPtr(idx.Positions.Len())
	}

	return info
}
