package seqio_test

import (
	"context"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/seqio"
)

type sliceSource struct {
	frags []seqio.Fragment
	i     int
}

func (s *sliceSource) Next(ctx context.Context) (seqio.Fragment, bool, error) {
	if s.i >= len(s.frags) {
		return seqio.Fragment{}, false, nil
	}
	f := s.frags[s.i]
	s.i++
	return f, true, nil
}

func toLetters(s string) alphabet.Letters {
	out := make(alphabet.Letters, len(s))
	for i := range s {
		out[i] = alphabet.Letter(s[i])
	}
	return out
}

func TestFragmentValidateSourceIDRange(t *testing.T) {
	require := require.New(t)

	f := seqio.Fragment{SourceID: 0, Letters: toLetters("ACGTACGT")}
	require.ErrorIs(f.Validate(5), seqio.ErrSourceIDRange)

	f.SourceID = seqio.MaxSourceID
	require.ErrorIs(f.Validate(5), seqio.ErrSourceIDRange)

	f.SourceID = 1
	require.NoError(f.Validate(5))
}

func TestFragmentAdmissible(t *testing.T) {
	require := require.New(t)

	short := seqio.Fragment{SourceID: 1, Letters: toLetters("ACG")}
	require.False(short.Admissible(5))

	long := seqio.Fragment{SourceID: 1, Letters: toLetters("ACGTACGT")}
	require.True(long.Admissible(5))
}

func TestSliceSourceIteration(t *testing.T) {
	require := require.New(t)

	src := &sliceSource{frags: []seqio.Fragment{
		{SourceID: 1, Letters: toLetters("ACGTACGT")},
		{SourceID: 2, Letters: toLetters("TTTTACGT")},
	}}

	var got []seqio.Fragment
	for {
		f, ok, err := src.Next(context.Background())
		require.NoError(err)
		if !ok {
			break
		}
		got = append(got, f)
	}
	require.Len(got, 2)
	require.Equal(1, got[0].SourceID)
}
