// Package stats computes summary statistics of an in-memory GFA graph.
package stats

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/gfaidx/graph"
)

// Bin is one bucket of the segment length histogram.
type Bin struct {
	Label string `json:"label" yaml:"label"`
	Min   uint64 `json:"min" yaml:"min"`
	Max   uint64 `json:"max" yaml:"max"` // exclusive
	Count int    `json:"count" yaml:"count"`
}

// Stats summarizes a graph. Segment lengths come from the sequence or, for '*'
// sequences, the LN tag. GC content only counts bases that were loaded.
type Stats struct {
	SegmentCount            int         `json:"segment_count" yaml:"segment_count"`
	LinkCount               int         `json:"link_count" yaml:"link_count"`
	PathCount               int         `json:"path_count" yaml:"path_count"`
	WalkCount               int         `json:"walk_count" yaml:"walk_count"`
	TotalSequenceLength     uint64      `json:"total_sequence_length" yaml:"total_sequence_length"`
	AverageSegmentLength    float64     `json:"average_segment_length" yaml:"average_segment_length"`
	MinSegmentLength        uint64      `json:"min_segment_length" yaml:"min_segment_length"`
	MaxSegmentLength        uint64      `json:"max_segment_length" yaml:"max_segment_length"`
	N50                     uint64      `json:"n50" yaml:"n50"`
	GCContent               float64     `json:"gc_content" yaml:"gc_content"`
	ConnectedComponents     int         `json:"connected_components" yaml:"connected_components"`
	AveragePathLength       float64     `json:"average_path_length" yaml:"average_path_length"`
	TotalPathSequenceLength uint64      `json:"total_path_sequence_length" yaml:"total_path_sequence_length"`
	SegmentLengthHistogram  []Bin       `json:"segment_length_histogram" yaml:"segment_length_histogram"`
	InDegreeDistribution    map[int]int `json:"in_degree_distribution" yaml:"in_degree_distribution"`
	OutDegreeDistribution   map[int]int `json:"out_degree_distribution" yaml:"out_degree_distribution"`
}

var histogramBins = []Bin{
	{Label: "0-100", Min: 0, Max: 100},
	{Label: "100-500", Min: 100, Max: 500},
	{Label: "500-1K", Min: 500, Max: 1_000},
	{Label: "1K-5K", Min: 1_000, Max: 5_000},
	{Label: "5K-10K", Min: 5_000, Max: 10_000},
	{Label: "10K-50K", Min: 10_000, Max: 50_000},
	{Label: "50K-100K", Min: 50_000, Max: 100_000},
	{Label: "100K-500K", Min: 100_000, Max: 500_000},
	{Label: "500K-1M", Min: 500_000, Max: 1_000_000},
	{Label: ">1M", Min: 1_000_000, Max: math.MaxUint64},
}

// Compute gathers every statistic of g.
func Compute(g *graph.Graph) *Stats {
	s := &Stats{
		SegmentCount:        g.SegmentCount(),
		LinkCount:           g.LinkCount(),
		PathCount:           g.PathCount(),
		WalkCount:           g.WalkCount(),
		TotalSequenceLength: g.TotalSequenceLength(),
	}

	lengths := make([]uint64, 0, g.SegmentCount())
	var gc, acgt uint64
	for _, seg := range g.Segments() {
		lengths = append(lengths, seg.Length)
		for i := 0; i < len(seg.Sequence); i++ {
			switch seg.Sequence[i] {
			case 'G', 'C', 'g', 'c':
				gc++
				acgt++
			case 'A', 'T', 'a', 't':
				acgt++
			}
		}
	}

	if len(lengths) > 0 {
		s.MinSegmentLength = slices.Min(lengths)
		s.MaxSegmentLength = slices.Max(lengths)
		s.AverageSegmentLength = float64(s.TotalSequenceLength) / float64(len(lengths))
	}
	if acgt > 0 {
		s.GCContent = float64(gc) / float64(acgt) * 100
	}

	s.N50 = N50(lengths)
	s.SegmentLengthHistogram = Histogram(lengths)
	s.ConnectedComponents = ConnectedComponents(g)
	s.AveragePathLength, s.TotalPathSequenceLength = pathStats(g)
	s.InDegreeDistribution, s.OutDegreeDistribution = degreeDistributions(g)

	return s
}

// N50 returns the length L such that segments of length >= L hold at least half of
// the total length. It returns 0 for no segments.
func N50(lengths []uint64) uint64 {
	if len(lengths) == 0 {
		return 0
	}

	sorted := slices.Clone(lengths)
	slices.SortFunc(sorted, func(a, b uint64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		default:
			return 0
		}
	})

	var total uint64
	for _, l := range sorted {
		total += l
	}
	half := total / 2

	var sum uint64
	for _, l := range sorted {
		sum += l
		if sum >= half {
			return l
		}
	}

	return 0
}

// Histogram buckets lengths into fixed bins from 0-100 up to >1M.
func Histogram(lengths []uint64) []Bin {
	bins := slices.Clone(histogramBins)
	for _, l := range lengths {
		for i := range bins {
			if l >= bins[i].Min && l < bins[i].Max {
				bins[i].Count++
				break
			}
		}
	}

	return bins
}

// ConnectedComponents counts the components of the undirected graph formed by the
// segments and the links between them. Links to undefined segments are ignored.
func ConnectedComponents(g *graph.Graph) int {
	ids := make(map[string]int, g.SegmentCount())
	for name := range g.Segments() {
		ids[name] = len(ids)
	}

	parent := make([]int, len(ids))
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}

		return x
	}

	components := len(ids)
	for _, l := range g.Links() {
		a, okA := ids[l.From]
		b, okB := ids[l.To]
		if !okA || !okB {
			continue
		}
		if ra, rb := find(a), find(b); ra != rb {
			parent[ra] = rb
			components--
		}
	}

	return components
}

func pathStats(g *graph.Graph) (float64, uint64) {
	if g.PathCount() == 0 {
		return 0, 0
	}

	var steps int
	var total uint64
	for _, p := range g.Paths() {
		steps += len(p.Steps)
		for _, st := range p.Steps {
			if seg, ok := g.Segment(st.Segment); ok {
				total += seg.Length
			}
		}
	}

	return float64(steps) / float64(g.PathCount()), total
}

func degreeDistributions(g *graph.Graph) (map[int]int, map[int]int) {
	in := make(map[string]int, g.SegmentCount())
	out := make(map[string]int, g.SegmentCount())
	for name := range g.Segments() {
		in[name] = 0
		out[name] = 0
	}

	for _, l := range g.Links() {
		if _, ok := out[l.From]; ok {
			out[l.From]++
		}
		if _, ok := in[l.To]; ok {
			in[l.To]++
		}
	}

	return distribution(in), distribution(out)
}

func distribution(degrees map[string]int) map[int]int {
	dist := make(map[int]int)
	for _, d := range degrees {
		dist[d]++
	}

	return dist
}

// Summary renders s as an aligned text report.
func (s *Stats) Summary() string {
	var b strings.Builder

	b.WriteString("=== GFA Graph Statistics ===\n\n")
	fmt.Fprintf(&b, "Segments (nodes):        %12d\n", s.SegmentCount)
	fmt.Fprintf(&b, "Links (edges):           %12d\n", s.LinkCount)
	fmt.Fprintf(&b, "Paths:                   %12d\n", s.PathCount)
	if s.WalkCount > 0 {
		fmt.Fprintf(&b, "  of which walks:        %12d\n", s.WalkCount)
	}
	fmt.Fprintf(&b, "Connected components:    %12d\n\n", s.ConnectedComponents)

	b.WriteString("--- Sequence Statistics ---\n")
	fmt.Fprintf(&b, "Total sequence length:   %12d bp\n", s.TotalSequenceLength)
	fmt.Fprintf(&b, "Average segment length:  %12.2f bp\n", s.AverageSegmentLength)
	fmt.Fprintf(&b, "Min segment length:      %12d bp\n", s.MinSegmentLength)
	fmt.Fprintf(&b, "Max segment length:      %12d bp\n", s.MaxSegmentLength)
	fmt.Fprintf(&b, "N50:                     %12d bp\n", s.N50)
	fmt.Fprintf(&b, "GC content:              %12.2f%%\n\n", s.GCContent)

	if s.PathCount > 0 {
		b.WriteString("--- Path Statistics ---\n")
		fmt.Fprintf(&b, "Average path length:     %12.2f segments\n", s.AveragePathLength)
		fmt.Fprintf(&b, "Total path seq length:   %12d bp\n\n", s.TotalPathSequenceLength)
	}

	b.WriteString("--- Segment Length Distribution ---\n")
	for _, bin := range s.SegmentLengthHistogram {
		if bin.Count > 0 {
			fmt.Fprintf(&b, "%15s: %8d\n", bin.Label, bin.Count)
		}
	}

	return b.String()
}
