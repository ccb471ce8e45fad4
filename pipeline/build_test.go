package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/config"
	"github.com/katalvlaran/dbgc/pipeline"
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

// TestBuildProducesOutputFile drives the whole pipeline end-to-end over
// a single small fragment and checks a non-empty FASTA-like output file
// lands where cfg.OutputPrefix names it.
func TestBuildProducesOutputFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	cfg := config.New(
		config.WithK(5),
		config.WithL(3),
		config.WithGraphs(2),
		config.WithGraphsPerAtlas(2),
		config.WithThreads(2),
		config.WithReaderThreads(2),
		config.WithWorkDir(dir),
		config.WithOutputPrefix("out"),
	)

	src := &sliceSource{frags: []seqio.Fragment{
		{SourceID: 1, Letters: toLetters("ACGTACGTACGTACGT")},
	}}

	err := pipeline.Build(context.Background(), cfg, 0xD0B6C, src)
	require.NoError(err)

	out, err := os.ReadFile(filepath.Join(dir, "out.fa"))
	require.NoError(err)
	require.NotEmpty(out)
}

// TestBuildColoredMode checks the colored sidecar path runs without
// error when coloring is enabled.
func TestBuildColoredMode(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	cfg := config.New(
		config.WithK(5),
		config.WithL(3),
		config.WithGraphs(2),
		config.WithGraphsPerAtlas(2),
		config.WithThreads(2),
		config.WithReaderThreads(2),
		config.WithWorkDir(dir),
		config.WithOutputPrefix("out"),
		config.WithColoring(true),
	)

	src := &sliceSource{frags: []seqio.Fragment{
		{SourceID: 1, Letters: toLetters("ACGTACGTACGTACGT")},
		{SourceID: 2, Letters: toLetters("TTTTACGTACGTACGT")},
	}}

	err := pipeline.Build(context.Background(), cfg, 0xD0B6C, src)
	require.NoError(err)

	out, err := os.ReadFile(filepath.Join(dir, "out.fa"))
	require.NoError(err)
	require.NotEmpty(out)

	colors, err := os.ReadFile(filepath.Join(dir, "out.colors"))
	require.NoError(err)
	require.NotEmpty(colors)
}
