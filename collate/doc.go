// Package collate implements the Collator of spec.md section 4.6: for
// each lm-tig bucket, it uses the PathInfo expander produced for every
// non-trivial lm-tig to reorder, reorient, and concatenate the bucket's
// records into one final sequence per maximal chain, while trivial
// maximal unitigs are streamed straight through untouched.
//
// The stitching shape — walk a sequence of pieces in path order,
// reverse a piece when its orientation disagrees with the walk, and
// join into one output record — is grounded on teacher tsp/eulerian.go's
// Hierholzer walk: that function threads half-edges into one closed
// tour by following each vertex's next unused link in order; collate
// threads lm-tig pieces into one chain by following each piece's Rank in
// order. Output uses the standard library only (bufio/os), as no pack
// dependency offers a buffered-writer abstraction beyond what bufio
// already provides.
package collate
