package subgraph

import (
	"fmt"
	"io"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
)

// UnitigSink receives every lm-tig the engine produces that does NOT
// need discontinuity edges — a trivial maximal unitig, written directly
// to output per spec.md section 4.2.
type UnitigSink interface {
	WriteUnitig(tig LmTig) error
}

// EdgeSink receives discontinuity edges that leave the subgraph, keyed
// by the (row,col) cell their endpoints' partitions select.
type EdgeSink interface {
	AppendEdge(row, col int, e edgematrix.Edge) error
}

// LmTigStore persists a non-trivial lm-tig — one whose endpoints need
// discontinuity edges and so cannot be streamed straight to final
// output — and returns the index collate will later recover it by via
// its edges' (Bucket, BucketIndex) pair (spec.md section 4.2's "(b, b_idx)
// locate the associated lm-tig in on-disk bucketed storage").
type LmTigStore interface {
	StoreLmTig(tig LmTig) (index int, err error)
}

// Engine materializes one subgraph bucket's local de Bruijn graph and
// walks its maximal non-branching paths (spec.md section 4.2).
type Engine struct {
	K        int
	Seed     uint64 // k-mer hash seed, shared with the partitioner/minimizer
	P        int    // edge-matrix partition count
	BucketID int    // this subgraph's lm-tig bucket id, for Discontinuity_Edge.Bucket

	table *HashTable
}

// NewEngine allocates an Engine with a hash table sized from
// estimatedVertices (typically a HyperLogLog estimate with slack).
func NewEngine(k int, seed uint64, p, bucketID, estimatedVertices int) *Engine {
	return &Engine{
		K:        k,
		Seed:     seed,
		P:        p,
		BucketID: bucketID,
		table:    NewHashTable(estimatedVertices, seed),
	}
}

// Load decodes every SuperKmerRecord in reader and folds its k+1-mer
// edges into the hash table (spec.md section 4.2's "Construction" and
// edge-ingestion rules).
func (e *Engine) Load(reader *atlas.Reader) error {
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		rec, err := atlas.DecodeSuperKmerRecord(raw)
		if err != nil {
			return err
		}
		if err := e.Ingest(rec); err != nil {
			return err
		}
	}
}

// Ingest folds one decoded super-k-mer's (k+1)-mers into the table.
// Exposed so callers (and tests) can feed records without going through
// an on-disk Bucket/Reader.
func (e *Engine) Ingest(rec atlas.SuperKmerRecord) error {
	kp1 := e.K + 1
	numEdges := rec.Bases - e.K
	if numEdges <= 0 {
		return nil
	}
	for w := 0; w < numEdges; w++ {
		edge := kmer.KmerAt(rec.Packed, w, kp1)
		prefix, suffix := kmer.SplitKPlus1(edge)

		fromCanon, fromWasCanon := canonicalize(prefix)
		toCanon, toWasCanon := canonicalize(suffix)

		fromState, err := e.table.GetOrInsert(fromCanon)
		if err != nil {
			return fmt.Errorf("loading subgraph %d: %w", e.BucketID, err)
		}
		toState, err := e.table.GetOrInsert(toCanon)
		if err != nil {
			return fmt.Errorf("loading subgraph %d: %w", e.BucketID, err)
		}

		fromBase := edge.BaseAt(kp1 - 1)
		toBase := edge.BaseAt(0)

		lDisc := w == 0 && rec.LDisc
		rDisc := w == numEdges-1 && rec.RDisc

		observeEdge(fromState, toState, fromWasCanon, toWasCanon, fromBase, toBase, lDisc, rDisc)
	}
	return nil
}

// Run walks every unvisited vertex's maximal non-branching path, routing
// each resulting lm-tig to unitigSink (trivial unitigs, streamed
// straight to final output), or to lmtigs+edgeSink (non-trivial tigs:
// persisted for later collation, with discontinuity edges recorded
// against the index they were stored at), per spec.md section 4.2.
func (e *Engine) Run(unitigSink UnitigSink, lmtigs LmTigStore, edgeSink EdgeSink) error {
	var pending []kmer.Kmer
	e.table.Each(func(key kmer.Kmer, state *StateConfig) {
		if !state.Visited {
			pending = append(pending, key)
		}
	})

	for _, start := range pending {
		if e.table.IsVisited(start) {
			continue
		}
		tig := WalkUnitig(e.table, start)
		if !tig.NeedsDiscontinuityEdges() {
			if err := unitigSink.WriteUnitig(tig); err != nil {
				return err
			}
			continue
		}
		index, err := lmtigs.StoreLmTig(tig)
		if err != nil {
			return err
		}
		if err := e.emitDiscontinuityEdges(tig, index, edgeSink); err != nil {
			return err
		}
	}
	return nil
}

// emitDiscontinuityEdges records one or two Discontinuity_Edge entries
// for a non-trivial lm-tig's disc-flagged endpoints, each pointing back
// at the tig via (e.BucketID, index) (spec.md section 4.2).
func (e *Engine) emitDiscontinuityEdges(tig LmTig, index int, sink EdgeSink) error {
	seq := tig.Sequence
	k := e.K
	leftKmer := kmer.MustEncode(seq[:k])
	rightKmer := kmer.MustEncode(seq[len(seq)-k:])
	leftCanon, _ := canonicalize(leftKmer)
	rightCanon, _ := canonicalize(rightKmer)

	if tig.LeftDisc {
		px := edgematrix.PartitionOf(leftCanon, e.P, e.Seed)
		row, col := edgematrix.CellFor(0, px)
		edge := edgematrix.Edge{
			X:           edgematrix.Endpoint{IsPhi: true, Side: edgematrix.Front},
			Y:           edgematrix.Endpoint{Vertex: leftCanon, Side: edgematrix.Front},
			Weight:      1,
			Bucket:      e.BucketID,
			BucketIndex: index,
		}
		if err := sink.AppendEdge(row, col, edge); err != nil {
			return err
		}
	}
	if tig.RightDisc {
		px := edgematrix.PartitionOf(rightCanon, e.P, e.Seed)
		row, col := edgematrix.CellFor(0, px)
		edge := edgematrix.Edge{
			X:           edgematrix.Endpoint{IsPhi: true, Side: edgematrix.Back},
			Y:           edgematrix.Endpoint{Vertex: rightCanon, Side: edgematrix.Back},
			Weight:      1,
			Bucket:      e.BucketID,
			BucketIndex: index,
		}
		if err := sink.AppendEdge(row, col, edge); err != nil {
			return err
		}
	}
	return nil
}

// Table exposes the underlying hash table, primarily for tests.
func (e *Engine) Table() *HashTable { return e.table }
