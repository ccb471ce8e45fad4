// Command dbgc runs the de Bruijn graph compaction pipeline over one
// FASTA file. Flag parsing here is deliberately minimal — spec.md
// section 1 excludes a full CLI surface (and FASTA/FASTQ splitting)
// from this tool's scope; this is just enough wiring to drive package
// pipeline from a shell, trusting biogo's own reader to hand back whole
// records and treating each record as one Fragment as-is.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	bioseqio "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/katalvlaran/dbgc/config"
	"github.com/katalvlaran/dbgc/pipeline"
	"github.com/katalvlaran/dbgc/seqio"
)

func main() {
	in := flag.String("in", "", "input FASTA file (required)")
	workDir := flag.String("workdir", ".", "scratch directory for intermediate files")
	outPrefix := flag.String("out", "out", "output file prefix")
	k := flag.Int("k", 31, "k-mer length")
	l := flag.Int("l", 11, "minimizer length")
	graphs := flag.Int("graphs", 16384, "number of subgraph buckets, power of two")
	seed := flag.Uint64("seed", 0x5EED1E55, "hash seed")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	cfg := config.New(
		config.WithK(*k),
		config.WithL(*l),
		config.WithGraphs(*graphs),
		config.WithWorkDir(*workDir),
		config.WithOutputPrefix(*outPrefix),
	)

	src := &fileSource{reader: bioseqio.NewReader(f, linear.NewSeq("", nil, alphabet.DNAredundant))}
	if err := pipeline.Build(context.Background(), cfg, *seed, src); err != nil {
		log.Fatalf("build: %v", err)
	}
}

// fileSource adapts a single biogo FASTA reader into a
// seqio.FragmentSource: every record becomes one Fragment, under a
// single source id. Coloring needs more than one input stream, which
// this command does not provide.
type fileSource struct {
	reader *bioseqio.Reader
}

func (s *fileSource) Next(ctx context.Context) (seqio.Fragment, bool, error) {
	rec, err := s.reader.Read()
	if err == io.EOF {
		return seqio.Fragment{}, false, nil
	}
	if err != nil {
		return seqio.Fragment{}, false, err
	}
	ls, ok := rec.(*linear.Seq)
	if !ok {
		return s.Next(ctx) // skip a record type biogo's fasta reader didn't hand back as linear.Seq
	}
	return seqio.Fragment{SourceID: 1, Letters: ls.Seq}, true, nil
}
