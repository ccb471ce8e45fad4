package subgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/subgraph"
)

func TestLmTigEncodeDecodeRoundTrip(t *testing.T) {
	require := require.New(t)

	tig := subgraph.LmTig{
		Sequence:  "AAAACCCCGG",
		LeftTerm:  subgraph.TermDisc,
		RightTerm: subgraph.TermBranch,
		LeftDisc:  true,
		RightDisc: false,
		Cycle:     false,
	}

	got, err := subgraph.DecodeLmTig(tig.Encode())
	require.NoError(err)
	require.Equal(tig, got)
}
