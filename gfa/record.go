package gfa

import (
	"strconv"
	"strings"
)

// RecordKind identifies the variant of a Record.
type RecordKind uint8

const (
	KindSkipped RecordKind = iota
	KindHeader
	KindSegment
	KindLink
	KindPath
	KindWalk
)

func (k RecordKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSegment:
		return "segment"
	case KindLink:
		return "link"
	case KindPath:
		return "path"
	case KindWalk:
		return "walk"
	default:
		return "skipped"
	}
}

// Span is the byte range a record line occupies in its source file. Length excludes
// the line terminator.
type Span struct {
	Offset int64
	Length uint32
}

// End returns the offset just past the record text.
func (s Span) End() int64 {
	return s.Offset + int64(s.Length)
}

// Record is one parsed GFA line.
type Record interface {
	Kind() RecordKind
	Span() Span
	record()
}

// Header is an H record.
type Header struct {
	Version string // value of the VN tag, e.g. "1.0"
	Tags    []Tag
	Loc     Span
}

// Segment is an S record. Sequence is empty when the parser does not keep sequences
// or the record uses '*'; Length is always set.
type Segment struct {
	Name     string
	Sequence string
	Length   uint64
	Tags     []Tag
	Loc      Span
}

// Link is an L record.
type Link struct {
	From       string
	FromOrient Orientation
	To         string
	ToOrient   Orientation
	Overlap    string
	Tags       []Tag
	Loc        Span
}

// Step is one oriented segment visit of a path or walk.
type Step struct {
	Segment     string
	Orientation Orientation
}

func (s Step) String() string {
	return s.Segment + s.Orientation.String()
}

// Path is a P record.
type Path struct {
	Name     string
	Steps    []Step
	Overlaps []string // nil when the overlap field is absent or '*'
	Tags     []Tag
	Loc      Span
}

// Walk is a W record (GFA 1.1).
type Walk struct {
	Sample    string
	Haplotype uint64
	SeqID     string
	SeqStart  int64 // -1 when '*'
	SeqEnd    int64 // -1 when '*'
	Steps     []Step
	Tags      []Tag
	Loc       Span
}

// Skipped marks a line that carries no record this package understands: a blank
// line, a comment, or an unsupported record type.
type Skipped struct {
	Type byte // first byte of the line, 0 for blank lines
	Loc  Span
}

func (*Header) Kind() RecordKind  { return KindHeader }
func (*Segment) Kind() RecordKind { return KindSegment }
func (*Link) Kind() RecordKind    { return KindLink }
func (*Path) Kind() RecordKind    { return KindPath }
func (*Walk) Kind() RecordKind    { return KindWalk }
func (*Skipped) Kind() RecordKind { return KindSkipped }

func (r *Header) Span() Span  { return r.Loc }
func (r *Segment) Span() Span { return r.Loc }
func (r *Link) Span() Span    { return r.Loc }
func (r *Path) Span() Span    { return r.Loc }
func (r *Walk) Span() Span    { return r.Loc }
func (r *Skipped) Span() Span { return r.Loc }

func (*Header) record()  {}
func (*Segment) record() {}
func (*Link) record()    {}
func (*Path) record()    {}
func (*Walk) record()    {}
func (*Skipped) record() {}

// Name returns the path name a walk is indexed under: sample#haplotype#seqid.
func (w *Walk) Name() string {
	var b strings.Builder
	b.Grow(len(w.Sample) + len(w.SeqID) + 8)
	b.WriteString(w.Sample)
	b.WriteByte('#')
	b.WriteString(strconv.FormatUint(w.Haplotype, 10))
	b.WriteByte('#')
	b.WriteString(w.SeqID)

	return b.String()
}

// AsPath converts the walk into a Path named by Name.
func (w *Walk) AsPath() *Path {
	return &Path{
		Name:  w.Name(),
		Steps: w.Steps,
		Tags:  w.Tags,
		Loc:   w.Loc,
	}
}
