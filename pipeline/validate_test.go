package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
	"github.com/katalvlaran/dbgc/pipeline"
	"github.com/katalvlaran/dbgc/subgraph"
)

func TestValidatePartitionDeterminism(t *testing.T) {
	require := require.New(t)

	v := kmer.MustEncode("ACGTA")
	const p, seed = 8, uint64(42)
	recorded := edgematrix.PartitionOf(v, p, seed)

	require.NoError(pipeline.ValidatePartitionDeterminism(v, recorded, p, seed))
	require.ErrorIs(pipeline.ValidatePartitionDeterminism(v, recorded+1, p, seed), pipeline.ErrPartitionNotDeterministic)
}

func TestValidateReverseComplementInvolution(t *testing.T) {
	require := require.New(t)
	require.NoError(pipeline.ValidateReverseComplementInvolution(kmer.MustEncode("ACGTA")))
}

func TestValidateKmerRoundTrip(t *testing.T) {
	require := require.New(t)
	require.NoError(pipeline.ValidateKmerRoundTrip([]byte("ACGTACGT")))
}

func TestValidateLmTig(t *testing.T) {
	require := require.New(t)

	// A disc-flagged endpoint always passes, regardless of termination.
	require.NoError(pipeline.ValidateLmTig(subgraph.LmTig{
		Sequence: "ACGTACGT",
		LeftTerm: subgraph.TermBranch, LeftDisc: true,
		RightTerm: subgraph.TermChainEnd, RightDisc: false,
	}))

	// A cycle never needs endpoint checks.
	require.NoError(pipeline.ValidateLmTig(subgraph.LmTig{Sequence: "ACGTACGT", Cycle: true}))

	// A branch termination with no disc flag set is a real violation.
	err := pipeline.ValidateLmTig(subgraph.LmTig{
		Sequence: "ACGTACGT",
		LeftTerm: subgraph.TermBranch, LeftDisc: false,
		RightTerm: subgraph.TermChainEnd, RightDisc: false,
	})
	require.ErrorIs(err, pipeline.ErrLmTigNotDiscAdjacent)
}
