package hll_test

import (
	"math"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/hll"
)

func TestEstimateWithinTolerance(t *testing.T) {
	require := require.New(t)

	sk, err := hll.New(14)
	require.NoError(err)

	const n = 200000
	for i := 0; i < n; i++ {
		var buf [8]byte
		buf[0] = byte(i)
		buf[1] = byte(i >> 8)
		buf[2] = byte(i >> 16)
		buf[3] = byte(i >> 24)
		sk.Add(xxhash.Sum64(buf[:]))
	}

	got := sk.Estimate()
	errPct := math.Abs(float64(got)-n) / n
	require.Less(errPct, 0.05, "got=%d want~=%d", got, n)
}

func TestNewRejectsBadPrecision(t *testing.T) {
	require := require.New(t)

	_, err := hll.New(2)
	require.ErrorIs(err, hll.ErrBadPrecision)

	_, err = hll.New(30)
	require.ErrorIs(err, hll.ErrBadPrecision)
}

func TestMergeUnion(t *testing.T) {
	require := require.New(t)

	a, _ := hll.New(10)
	b, _ := hll.New(10)
	for i := 0; i < 1000; i++ {
		a.Add(xxhash.Sum64([]byte{byte(i), byte(i >> 8)}))
	}
	for i := 500; i < 1500; i++ {
		b.Add(xxhash.Sum64([]byte{byte(i), byte(i >> 8)}))
	}
	require.NoError(a.Merge(b))

	got := a.Estimate()
	errPct := math.Abs(float64(got)-1500) / 1500
	require.Less(errPct, 0.1)
}

func TestMergeRejectsPrecisionMismatch(t *testing.T) {
	require := require.New(t)

	a, _ := hll.New(10)
	b, _ := hll.New(12)
	require.Error(a.Merge(b))
}

func TestCapacityForRoundsToPowerOfTwo(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(16), hll.CapacityFor(1, 0.75))
	require.Equal(uint64(1024), hll.CapacityFor(750, 0.75))
	require.Equal(uint64(2048), hll.CapacityFor(769, 0.75))
}
