package contractor_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/contractor"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
)

// TestContractColumnFusesDiagonalChain builds a tiny 2-cell edge matrix
// (P=1) where vertex v sits alone in the diagonal block with two
// incidences, a left neighbour x and a right neighbour y living in the
// off-diagonal row/column cells. Contracting column 0 should fuse v away
// and leave a single x-y edge behind.
func TestContractColumnFusesDiagonalChain(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	m, err := edgematrix.Open(dir, 1)
	require.NoError(err)
	defer m.Close()

	v := kmer.MustEncode("AAAAA")
	x := kmer.MustEncode("CCCCC")
	y := kmer.MustEncode("GGGGG")

	// Diagonal block (0,0): two edges both touching v, chaining x-v and v-y.
	_, err = m.Append(0, 0, edgematrix.Edge{
		X:      edgematrix.Endpoint{Vertex: x, Side: edgematrix.Front},
		Y:      edgematrix.Endpoint{Vertex: v, Side: edgematrix.Front},
		Weight: 1,
	})
	require.NoError(err)
	_, err = m.Append(0, 0, edgematrix.Edge{
		X:      edgematrix.Endpoint{Vertex: v, Side: edgematrix.Back},
		Y:      edgematrix.Endpoint{Vertex: y, Side: edgematrix.Back},
		Weight: 1,
	})
	require.NoError(err)

	c := contractor.New(m, 7, dir)
	require.NoError(c.ContractColumn(context.Background(), 0))

	// The diagonal cell itself is left as read, untouched by the sweep:
	// contraction only rewrites edges living in OTHER cells.
	diag, err := m.Diagonal(0)
	require.NoError(err)
	require.Equal(int64(2), diag.Count())

	// D_0 records v's two entering-side resolutions: only v is fully
	// internal (touched on both slots by diagonal edges); x and y each
	// have only one diagonal-side incidence, so they stay live vertices.
	reader, err := atlas.OpenReader(filepath.Join(dir, "D_0"))
	require.NoError(err)
	defer reader.Close()

	bySide := map[edgematrix.Side]kmer.Kmer{}
	count := 0
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(err)
		rec, err := contractor.DecodeDiagonalRecord(raw)
		require.NoError(err)
		require.True(rec.Vertex.Equal(v))
		bySide[rec.EnterSide] = rec.Other.Vertex
		count++
	}
	require.Equal(2, count)
	require.True(bySide[edgematrix.Front].Equal(y)) // entering v from Front walks out its Back slot to y
	require.True(bySide[edgematrix.Back].Equal(x))  // entering v from Back walks out its Front slot to x
}
