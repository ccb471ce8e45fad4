package seqio

import (
	"context"
	"errors"

	"github.com/biogo/biogo/alphabet"
)

// MaxSourceID is the exclusive upper bound on source ids, spec.md
// section 4.1: "source-id ∈ [1, 2^21)".
const MaxSourceID = 1 << 21

// ErrSourceIDRange indicates a Fragment carried a source id outside
// [1, MaxSourceID).
var ErrSourceIDRange = errors.New("seqio: source id out of range")

// Fragment is one maximal placeholder-free run of nucleotide letters
// from a single record, tagged with its originating source id. Letters
// uses biogo's alphabet.Letter, the same element type
// biogo/biogo/seq/linear.Seq stores, so an adapter over an existing
// biogo-based reader only needs to slice out placeholder-free runs and
// attach a SourceID.
type Fragment struct {
	SourceID int
	Letters  alphabet.Letters
}

// Validate checks that SourceID is in [1, MaxSourceID). It does not
// check the length of Letters (kPlus1 is not consulted); package
// partition skips fragments shorter than k+1 through Admissible.
func (f Fragment) Validate(kPlus1 int) error {
	if f.SourceID < 1 || f.SourceID >= MaxSourceID {
		return ErrSourceIDRange
	}
	return nil
}

// Admissible reports whether f is long enough to be an admissible
// fragment for k (spec.md section 4.1: "length >= k+1").
func (f Fragment) Admissible(k int) bool {
	return len(f.Letters) >= k+1
}

// FragmentSource streams Fragments from some external collection of
// records. Implementations are expected to already have stripped
// placeholder symbols and split records into maximal runs; package
// seqio only specifies the shape, matching spec.md's design note
// "Vendored third-party code": "(a) a streaming fragment iterator
// producing (source_id, fragment_bytes)".
//
// Next returns (Fragment{}, false, nil) once the source is exhausted,
// and a non-nil error is always fatal (spec.md section 4.1 "Failure
// semantics": "Reader errors are fatal.").
type FragmentSource interface {
	Next(ctx context.Context) (Fragment, bool, error)
}

// PackedSuperKmer is one record as produced by a KMC-style bin reader:
// already bucketed and boundary-tagged, bypassing raw sequence parsing
// entirely (spec.md section 6, "a KMC-like super-k-mer bin reader").
type PackedSuperKmer struct {
	Subgraph  int
	Bytes     []byte // 2-bit-packed bases, see kmer.PackBases for the layout
	Bases     int
	LeftDisc  bool
	RightDisc bool
	LeftJoin  bool
	RightJoin bool
	SourceID  int // 0 when coloring is disabled
}

// BinReader streams PackedSuperKmer records, the alternative input path
// mentioned in spec.md section 6 that lets a caller skip the
// Partitioner's own minimizer-boundary detection when records were
// already binned by an upstream KMC-compatible tool.
type BinReader interface {
	Next(ctx context.Context) (PackedSuperKmer, bool, error)
}
