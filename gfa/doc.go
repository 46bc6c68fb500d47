// Package gfa parses Graphical Fragment Assembly (GFA) record lines.
//
// A GFA file is a sequence of tab-separated lines whose first character selects the
// record type:
//
//	H  header            H	VN:Z:1.0
//	S  segment (node)    S	s1	ACGT	LN:i:4
//	L  link (edge)       L	s1	+	s2	-	0M
//	P  path              P	p1	s1+,s2-	*
//	W  walk              W	HG002	1	chr1	0	8	>s1<s2
//
// ParseLine turns one line into a Record, a sealed union over *Header, *Segment,
// *Link, *Path, *Walk and *Skipped. Consumers switch on the concrete type:
//
//	rec, err := gfa.ParseLine(line.Text, line.Offset)
//	if err != nil {
//		return err
//	}
//	switch r := rec.(type) {
//	case *gfa.Segment:
//		fmt.Println(r.Name, r.Length)
//	case *gfa.Path:
//		fmt.Println(r.Name, len(r.Steps))
//	}
//
// Every record carries the Span it occupied in the source file, which is what the
// index package stores to re-read a record later without scanning the file.
//
// Unknown record letters (C, J, E, F, G, O, U, ...), blank lines and '#' comments parse
// to *Skipped rather than an error, so newer GFA dialects can still be read.
//
// LineReader streams a file line by line while tracking the exact byte offset of each
// line, including lines far longer than any buffer.
package gfa
