// Package index builds, stores and loads random-access indices over GFA files.
//
// An Index never holds sequences. It records where each segment and path line sits in
// its source file, so a query can read exactly one line with a positional read, and,
// for position indices, the cumulative coordinate range every path step covers.
//
// # Building
//
// Build streams the source twice at most. The first pass always runs and collects the
// offset, byte length and sequence length of every S line. The second pass only runs
// when path or position indices are requested; it turns every P and W line into a
// path entry and/or a list of position entries:
//
//	idx, err := index.Build("graph.gfa", format.IndexFull,
//	    index.WithLenientReferences(),
//	    index.WithLogger(logger),
//	)
//
// Paths that reference an undefined segment abort the build with a *BuildError
// wrapping errs.ErrUndefinedSegment. With WithLenientReferences such steps get a
// zero-length position entry and the build records a Warning instead.
//
// # Storage
//
// Save writes the index atomically (temporary file plus rename) in the layout
// described in package section. Load and Decode verify the magic, the version, the
// body checksum and every declared length before anything is returned.
//
// A loaded Index is immutable and safe for concurrent use.
package index
