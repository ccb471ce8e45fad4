package pipeline

import (
	"io"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/hll"
	"github.com/katalvlaran/dbgc/kmer"
)

// hllPrecision sizes the sketch at 2^14 registers, the standard
// low-memory/decent-accuracy default for per-subgraph cardinality
// estimation at compaction scale.
const hllPrecision = 14

// estimateVertices runs a read-only pass over one subgraph's shard,
// feeding the canonical hashes of every (k+1)-mer's prefix and suffix
// k-mers (the subgraph's vertices) into a HyperLogLog sketch, so
// subgraph.NewEngine can size its hash table from a real cardinality
// estimate rather than the raw record count (spec.md section 4.2
// "Construction": "estimatedVertices (typically a HyperLogLog estimate
// with slack)").
func estimateVertices(reader *atlas.Reader, k int, seed uint64) (int, error) {
	sketch, err := hll.New(hllPrecision)
	if err != nil {
		return 0, err
	}

	kp1 := k + 1
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		rec, err := atlas.DecodeSuperKmerRecord(raw)
		if err != nil {
			return 0, err
		}
		numEdges := rec.Bases - k
		for w := 0; w < numEdges; w++ {
			edge := kmer.KmerAt(rec.Packed, w, kp1)
			prefix, suffix := kmer.SplitKPlus1(edge)
			sketch.Add(prefix.Canonical().Hash(seed))
			sketch.Add(suffix.Canonical().Hash(seed))
		}
	}

	est := sketch.Estimate()
	if est < 16 {
		est = 16
	}
	return int(est), nil
}
