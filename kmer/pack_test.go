package kmer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/kmer"
)

func TestPackUnpackBasesRoundTrip(t *testing.T) {
	require := require.New(t)

	seq := "ACGTACGTACGTACGTA" // 17 bases, not a multiple of 4
	packed, err := kmer.PackBases([]byte(seq))
	require.NoError(err)
	require.Len(packed, 5) // ceil(17/4)

	got := kmer.UnpackBases(packed, len(seq))
	require.Equal(seq, string(got))
}

func TestPackBasesRejectsBadSymbol(t *testing.T) {
	require := require.New(t)

	_, err := kmer.PackBases([]byte("ACGN"))
	require.ErrorIs(err, kmer.ErrBadSymbol)
}

func TestKmerAtExtractsSubKmer(t *testing.T) {
	require := require.New(t)

	seq := "ACGTACGTACGT"
	packed, err := kmer.PackBases([]byte(seq))
	require.NoError(err)

	k := kmer.KmerAt(packed, 2, 5)
	require.Equal("GTACG", k.String())

	k2 := kmer.KmerAt(packed, 0, len(seq))
	require.Equal(seq, k2.String())
}
