package collate_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/collate"
	"github.com/katalvlaran/dbgc/expander"
	"github.com/katalvlaran/dbgc/subgraph"
)

func TestCollateBucketStitchesChainInRankOrder(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	b, err := atlas.OpenBucket(filepath.Join(dir, "lmtigs"))
	require.NoError(err)

	// Two lm-tig pieces overlapping by k-1=4 bases at their join
	// ("AACC"), stored out of rank order to exercise the sort.
	store := collate.NewBucketLmTigStore(b)
	idxB, err := store.StoreLmTig(subgraph.LmTig{Sequence: "AACCCC"})
	require.NoError(err)
	idxA, err := store.StoreLmTig(subgraph.LmTig{Sequence: "AAAACC"})
	require.NoError(err)
	require.NoError(b.Flush())

	m := map[int]expander.PathInfo{
		idxA: {UnitigID: 1, Rank: 0, Orientation: true},
		idxB: {UnitigID: 1, Rank: 1, Orientation: true},
	}

	var out strings.Builder
	sink := collate.NewOutputSink(&out)
	buf := collate.NewWorkerBuffer(sink)
	c := collate.New(5, buf)

	reader, err := b.Reader()
	require.NoError(err)
	defer reader.Close()

	require.NoError(c.CollateBucket(reader, m))
	require.NoError(buf.Flush())

	require.Equal(">1\nAAAACCCC\n", out.String())
}
