package minimizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/kmer"
	"github.com/katalvlaran/dbgc/minimizer"
)

func TestOfMatchesSelfForLEqualsWindow(t *testing.T) {
	require := require.New(t)

	window := kmer.MustEncode("ACGTACG")
	res, err := minimizer.Of(window, window.K(), 7)
	require.NoError(err)
	require.Equal(0, res.Offset)
	require.Equal(window.PackedMSBFirst(), res.Value)
}

func TestOfRejectsLTooLong(t *testing.T) {
	require := require.New(t)

	window := kmer.MustEncode("ACGT")
	_, err := minimizer.Of(window, 5, 1)
	require.ErrorIs(err, minimizer.ErrBadL)
}

func TestIteratorMatchesBruteForce(t *testing.T) {
	require := require.New(t)

	seq := "ACGTTGCATGCATGCATTACGGTACGTAGCTAGCATG"
	const kMinus1 = 10
	const l = 4
	const seed = uint64(99)

	it, err := minimizer.NewIterator(kMinus1, l, seed)
	require.NoError(err)

	bases := make([]byte, len(seq))
	for i, c := range seq {
		switch c {
		case 'A':
			bases[i] = kmer.A
		case 'C':
			bases[i] = kmer.C
		case 'G':
			bases[i] = kmer.G
		case 'T':
			bases[i] = kmer.T
		}
	}

	for i, b := range bases {
		ready := it.Push(b)
		if i+1 < kMinus1 {
			require.False(ready)
			continue
		}
		require.True(ready)

		windowStart := i + 1 - kMinus1
		window := kmer.MustEncode(seq[windowStart : windowStart+kMinus1])
		want, err := minimizer.Of(window, l, seed)
		require.NoError(err)

		got := it.Current()
		require.Equal(want.Hash, got.Hash, "at window start %d", windowStart)
		require.Equal(want.Value, got.Value, "at window start %d", windowStart)
	}
}

func TestIteratorResetReusable(t *testing.T) {
	require := require.New(t)

	it, err := minimizer.NewIterator(5, 3, 1)
	require.NoError(err)

	for _, b := range []byte{kmer.A, kmer.C, kmer.G, kmer.T, kmer.A} {
		it.Push(b)
	}
	first := it.Current()

	it.Reset()
	for _, b := range []byte{kmer.A, kmer.C, kmer.G, kmer.T, kmer.A} {
		it.Push(b)
	}
	second := it.Current()

	require.Equal(first, second)
}

func TestMinimizerOfEveryLMinusOneMerIsItself(t *testing.T) {
	// spec.md 8, boundary behaviours: "For l = k-1, every (k-1)-mer is its
	// own minimizer."
	require := require.New(t)

	window := kmer.MustEncode("GATTACA")
	res, err := minimizer.Of(window, window.K(), 0)
	require.NoError(err)
	require.Equal(window.PackedMSBFirst(), res.Value)
	require.Equal(0, res.Offset)
}
