// Package query answers lookups against a loaded index and its source GFA file.
//
// Name lookups (GetSegment, GetPath) find the byte range of the record line in the
// index, read exactly that range from the source with one positional read, and parse
// it. Coordinate lookups (QueryPosition, QueryRange) only touch the in-memory index.
//
// An Engine is safe for concurrent use: the index is immutable and reads go through
// io.ReaderAt, which has no shared file cursor.
//
//	eng, err := query.Open("graph.gfai", "graph.gfa")
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	if err := eng.Stale(); err != nil {
//	    log.Warn("index may be out of date", "error", err)
//	}
//	entry, ok := eng.QueryPosition("chr1", 123456)
package query
