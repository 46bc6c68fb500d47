// Package graph holds a whole GFA file in memory.
//
// A Graph is what the statistics and validation commands work on. Index building does
// not use it: the index builder streams the file and never holds more than one record.
//
// Segments and paths are kept in the order they were inserted. Walk records are stored
// as paths named sample#haplotype#seqid.
//
//	g, err := graph.LoadFile("pangenome.gfa.gz")
//	if err != nil {
//	    return err
//	}
//	for name, seg := range g.Segments() {
//	    fmt.Println(name, seg.Length)
//	}
package graph
