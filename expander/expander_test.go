package expander_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/contractor"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/expander"
	"github.com/katalvlaran/dbgc/kmer"
)

// TestExpandPropagatesThroughOneColumn writes a single D_0 side file
// recording that eliminated vertex v resolves, entering from Front, to
// surviving vertex y with weight 3, and checks Expand assigns v a
// PathInfo derived from y's.
func TestExpandPropagatesThroughOneColumn(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	v := kmer.MustEncode("AAAAA")
	y := kmer.MustEncode("GGGGG")

	b, err := atlas.OpenBucket(filepath.Join(dir, "D_0"))
	require.NoError(err)
	rec := contractor.DiagonalRecord{
		Vertex:    v,
		EnterSide: edgematrix.Front,
		Other:     contractor.OtherEnd{Vertex: y, Side: edgematrix.Back, Weight: 3},
	}
	_, err = b.Append(rec.Encode())
	require.NoError(err)
	require.NoError(b.Flush())
	require.NoError(b.Close())

	seed := map[kmer.Kmer]expander.PathInfo{
		y: {UnitigID: 5, Rank: 10, Orientation: true},
	}

	e := expander.New(dir, 0)
	out, err := e.Expand(seed)
	require.NoError(err)

	vInfo, ok := out[v]
	require.True(ok)
	require.Equal(5, vInfo.UnitigID)
	require.Equal(7, vInfo.Rank) // 10 - 3, Front entry precedes the far end
	require.False(vInfo.Orientation) // Front entering vs Back far-side flips orientation

	yInfo, ok := out[y]
	require.True(ok)
	require.True(yInfo.Orientation)
}
