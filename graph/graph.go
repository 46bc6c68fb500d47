package graph

import (
	"fmt"
	"iter"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/gfa"
)

// Graph is an in-memory GFA graph.
//
// Note: Graph is NOT thread-safe for writes. Once loading is done it can be read
// from many goroutines.
type Graph struct {
	header    *gfa.Header
	segments  map[string]*gfa.Segment
	segOrder  []string
	paths     map[string]*gfa.Path
	pathOrder []string
	links     []*gfa.Link
	walks     int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		segments: make(map[string]*gfa.Segment),
		paths:    make(map[string]*gfa.Path),
	}
}

// Insert adds a record to the graph.
//
// Segment and path names are unique per kind: a second segment or path (or walk) with
// a name already in use returns errs.ErrDuplicateName and leaves the graph unchanged.
// Headers after the first one contribute their tags to the first. Skipped records are
// ignored.
func (g *Graph) Insert(rec gfa.Record) error {
	switch r := rec.(type) {
	case *gfa.Header:
		if g.header == nil {
			h := *r
			g.header = &h

			return nil
		}
		g.header.Tags = append(g.header.Tags, r.Tags...)
		if g.header.Version == "" {
			g.header.Version = r.Version
		}
	case *gfa.Segment:
		if _, ok := g.segments[r.Name]; ok {
			return fmt.Errorf("%w: segment %q", errs.ErrDuplicateName, r.Name)
		}
		g.segments[r.Name] = r
		g.segOrder = append(g.segOrder, r.Name)
	case *gfa.Link:
		g.links = append(g.links, r)
	case *gfa.Path:
		return g.insertPath(r)
	case *gfa.Walk:
		if err := g.insertPath(r.AsPath()); err != nil {
			return err
		}
		g.walks++
	case *gfa.Skipped, nil:
	default:
		return fmt.Errorf("graph: unsupported record %T", rec)
	}

	return nil
}

func (g *Graph) insertPath(p *gfa.Path) error {
	if _, ok := g.paths[p.Name]; ok {
		return fmt.Errorf("%w: path %q", errs.ErrDuplicateName, p.Name)
	}
	g.paths[p.Name] = p
	g.pathOrder = append(g.pathOrder, p.Name)

	return nil
}

// Header returns the merged header, or nil when the file had none.
func (g *Graph) Header() *gfa.Header {
	return g.header
}

// Segment returns the segment called name.
func (g *Graph) Segment(name string) (*gfa.Segment, bool) {
	s, ok := g.segments[name]
	return s, ok
}

// Path returns the path (or walk) called name.
func (g *Graph) Path(name string) (*gfa.Path, bool) {
	p, ok := g.paths[name]
	return p, ok
}

// Links returns every link in file order. The slice must not be modified.
func (g *Graph) Links() []*gfa.Link {
	return g.links
}

// SegmentCount returns the number of segments.
func (g *Graph) SegmentCount() int {
	return len(g.segOrder)
}

// PathCount returns the number of paths, walks included.
func (g *Graph) PathCount() int {
	return len(g.pathOrder)
}

// WalkCount returns how many of the paths came from W records.
func (g *Graph) WalkCount() int {
	return g.walks
}

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int {
	return len(g.links)
}

// TotalSequenceLength returns the sum of all segment lengths.
func (g *Graph) TotalSequenceLength() uint64 {
	var total uint64
	for _, s := range g.segments {
		total += s.Length
	}

	return total
}

// Segments iterates over segments in insertion order.
func (g *Graph) Segments() iter.Seq2[string, *gfa.Segment] {
	return func(yield func(string, *gfa.Segment) bool) {
		for _, name := range g.segOrder {
			if !yield(name, g.segments[name]) {
				return
			}
		}
	}
}

// Paths iterates over paths in insertion order.
func (g *Graph) Paths() iter.Seq2[string, *gfa.Path] {
	return func(yield func(string, *gfa.Path) bool) {
		for _, name := range g.pathOrder {
			if !yield(name, g.paths[name]) {
				return
			}
		}
	}
}
