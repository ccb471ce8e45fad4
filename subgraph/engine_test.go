package subgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
	"github.com/katalvlaran/dbgc/subgraph"
)

type fakeUnitigSink struct {
	tigs []subgraph.LmTig
}

func (f *fakeUnitigSink) WriteUnitig(tig subgraph.LmTig) error {
	f.tigs = append(f.tigs, tig)
	return nil
}

type fakeEdgeSink struct {
	edges []edgematrix.Edge
}

func (f *fakeEdgeSink) AppendEdge(row, col int, e edgematrix.Edge) error {
	f.edges = append(f.edges, e)
	return nil
}

type fakeLmTigStore struct {
	tigs []subgraph.LmTig
}

func (f *fakeLmTigStore) StoreLmTig(tig subgraph.LmTig) (int, error) {
	f.tigs = append(f.tigs, tig)
	return len(f.tigs) - 1, nil
}

func packRecord(t *testing.T, seq string, lDisc, rDisc bool) atlas.SuperKmerRecord {
	t.Helper()
	packed, err := kmer.PackBases([]byte(seq))
	require.NoError(t, err)
	return atlas.SuperKmerRecord{
		Bases:  len(seq),
		Packed: packed,
		LDisc:  lDisc,
		RDisc:  rDisc,
	}
}

// TestEngineSingleChain is in the spirit of spec.md section 8's concrete
// scenario 1 (one input record, k=5, expect a single unitig spanning the
// whole record, no cycles) using a non-repeating 10-base record so the
// six underlying 5-mers are all distinct and form a clean linear chain.
func TestEngineSingleChain(t *testing.T) {
	require := require.New(t)

	e := subgraph.NewEngine(5, 1, 4, 0, 16)
	rec := packRecord(t, "AAAACCCCGG", false, false)
	require.NoError(e.Ingest(rec))

	uSink := &fakeUnitigSink{}
	lSink := &fakeLmTigStore{}
	eSink := &fakeEdgeSink{}
	require.NoError(e.Run(uSink, lSink, eSink))

	require.Len(eSink.edges, 0)
	require.Len(uSink.tigs, 1)
	require.Equal(10, len(uSink.tigs[0].Sequence))
	require.False(uSink.tigs[0].Cycle)
}

// TestEngineDiscontinuousChainEmitsEdges checks that a chain flagged
// discontinuous on both ends is routed to the edge sink instead of the
// unitig sink.
func TestEngineDiscontinuousChainEmitsEdges(t *testing.T) {
	require := require.New(t)

	e := subgraph.NewEngine(5, 1, 4, 7, 16)
	rec := packRecord(t, "AAAACCCCGG", true, true)
	require.NoError(e.Ingest(rec))

	uSink := &fakeUnitigSink{}
	lSink := &fakeLmTigStore{}
	eSink := &fakeEdgeSink{}
	require.NoError(e.Run(uSink, lSink, eSink))

	require.Len(uSink.tigs, 0)
	require.Len(lSink.tigs, 1) // the one non-trivial tig is persisted for later collation
	require.Len(eSink.edges, 2)
	for _, edge := range eSink.edges {
		require.Equal(7, edge.Bucket)
		require.Equal(0, edge.BucketIndex)
		require.True(edge.X.IsPhi)
	}
}
