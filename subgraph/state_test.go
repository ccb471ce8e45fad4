package subgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/kmer"
	"github.com/katalvlaran/dbgc/subgraph"
)

func TestSideObserveSingleNeighbour(t *testing.T) {
	require := require.New(t)

	var s subgraph.Side
	require.Equal(0, s.Degree())

	s.Observe(kmer.C)
	require.Equal(1, s.Degree())
	b, ok := s.NeighbourBase()
	require.True(ok)
	require.Equal(kmer.C, b)
}

func TestSideObserveDivergingBasesBecomesMulti(t *testing.T) {
	require := require.New(t)

	var s subgraph.Side
	s.Observe(kmer.C)
	s.Observe(kmer.G)
	require.Equal(2, s.Degree())
	require.Equal(subgraph.SymMulti, s.Sym)
	_, ok := s.NeighbourBase()
	require.False(ok)
}

func TestSideObserveSameBaseStaysDegreeOne(t *testing.T) {
	require := require.New(t)

	var s subgraph.Side
	s.Observe(kmer.A)
	s.Observe(kmer.A)
	require.Equal(1, s.Degree())
}
