package kmer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/kmer"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, s := range []string{"A", "ACGT", "ACGTACGTACG", "TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"} {
		m, err := kmer.Encode([]byte(s))
		require.NoError(err)
		require.Equal(s, m.String())
		require.Equal(len(s), m.K())
	}
}

func TestEncodeRejectsBadSymbol(t *testing.T) {
	require := require.New(t)

	_, err := kmer.Encode([]byte("ACGN"))
	require.ErrorIs(err, kmer.ErrBadSymbol)
}

func TestReverseComplementInvolution(t *testing.T) {
	require := require.New(t)

	for _, s := range []string{"A", "ACGT", "AAAAACAAAA", "ACGTACGTACG"} {
		m := kmer.MustEncode(s)
		require.True(m.ReverseComplement().ReverseComplement().Equal(m))
	}
}

func TestReverseComplementKnownValues(t *testing.T) {
	require := require.New(t)

	require.Equal("T", kmer.MustEncode("A").ReverseComplement().String())
	require.Equal("ACGT", kmer.MustEncode("ACGT").ReverseComplement().String())
	require.Equal("TTTTT", kmer.MustEncode("AAAAA").ReverseComplement().String())
}

func TestCanonicalIsStable(t *testing.T) {
	require := require.New(t)

	m := kmer.MustEncode("ACGTACGTACG")
	c1 := m.Canonical()
	c2 := m.ReverseComplement().Canonical()
	require.True(c1.Equal(c2))
	require.True(c1.IsCanonical())
}

func TestRollForwardBackward(t *testing.T) {
	require := require.New(t)

	m := kmer.MustEncode("ACGTA")
	forward, err := m.RollForward('C')
	require.NoError(err)
	require.Equal("CGTAC", forward.String())

	back, err := forward.RollBackward('A')
	require.NoError(err)
	require.Equal(m.String(), back.String())
}

func TestSplitKPlus1(t *testing.T) {
	require := require.New(t)

	m := kmer.MustEncode("ACGTA")
	prefix, suffix := kmer.SplitKPlus1(m)
	require.Equal("ACGT", prefix.String())
	require.Equal("CGTA", suffix.String())
}

func TestPrefixSuffix(t *testing.T) {
	require := require.New(t)

	m := kmer.MustEncode("ACGTACG")
	require.Equal("ACG", m.Prefix(3).String())
	require.Equal("ACG", m.Suffix(3).String())
}

func TestLessTotalOrder(t *testing.T) {
	require := require.New(t)

	a := kmer.MustEncode("AAAA")
	c := kmer.MustEncode("CAAA")
	require.True(a.Less(c))
	require.False(c.Less(a))
	require.False(a.Less(a))
}

func TestHashDeterministicAndLengthSensitive(t *testing.T) {
	require := require.New(t)

	m := kmer.MustEncode("ACGTACGTACG")
	require.Equal(m.Hash(42), m.Hash(42))
	require.NotEqual(m.Hash(1), m.Hash(2))

	short := kmer.MustEncode("AA")
	require.NotEqual(short.Hash(1), kmer.MustEncode("A").Hash(1))
}

func TestLongKmerAcrossWordBoundary(t *testing.T) {
	require := require.New(t)

	s := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTA" // 61 bases
	require.Len(s, 61)
	m, err := kmer.Encode([]byte(s))
	require.NoError(err)
	require.Equal(s, m.String())
	require.True(m.ReverseComplement().ReverseComplement().Equal(m))
}
