package subgraph

import "github.com/katalvlaran/dbgc/kmer"

// EdgeSymbol is the per-side edge-count summary kept in a vertex's state
// configuration (spec.md section 3 "Subgraph state"): absent, exactly one
// observed neighbour base, or multi once a second, differing base is
// observed.
type EdgeSymbol byte

// EdgeSymbol values. SymA/SymC/SymG/SymT follow kmer.A..kmer.T's order,
// offset by one so that SymAbsent is zero (see symbolForBase).
const (
	SymAbsent EdgeSymbol = iota
	SymA
	SymC
	SymG
	SymT
	SymMulti
)

func symbolForBase(b byte) EdgeSymbol { return EdgeSymbol(b) + SymA }

// Side holds one endpoint-side's accumulated edge observations and its
// discontinuity flag.
type Side struct {
	Sym  EdgeSymbol
	Disc bool
}

// Observe folds one observed neighbour base into the side. The first
// observation records the base; any later, differing base collapses the
// side to SymMulti — the branch condition the unitig walk checks.
func (s *Side) Observe(b byte) {
	sym := symbolForBase(b)
	switch s.Sym {
	case SymAbsent:
		s.Sym = sym
	case sym:
		// same base observed again, no change
	default:
		s.Sym = SymMulti
	}
}

// Degree reports the walk-relevant edge count of the side: 0 (absent), 1
// (exactly one distinct neighbour base), or 2 standing in for "multi".
func (s Side) Degree() int {
	switch s.Sym {
	case SymAbsent:
		return 0
	case SymMulti:
		return 2
	default:
		return 1
	}
}

// NeighbourBase returns the single observed base and true when Degree()
// == 1.
func (s Side) NeighbourBase() (byte, bool) {
	if s.Sym < SymA || s.Sym > SymT {
		return 0, false
	}
	return byte(s.Sym - SymA), true
}

// StateConfig is the per-vertex (per canonical k-mer) state configuration
// materialized while a subgraph bucket is loaded (spec.md section 3).
type StateConfig struct {
	Left, Right Side
	ColorHash   uint64 // no stage writes it; always zero
	Visited     bool
}

// observeEdge folds one (k+1)-mer-derived undirected edge into the two
// endpoints' states. The (k+1)-mer's prefix k-mer `from` and suffix
// k-mer `to` may each be stored canonicalized; fromCanon/toCanon report
// whether each was reverse-complemented to reach that canonical form,
// which flips which side of the *canonical* vertex the edge attaches to
// and complements the neighbour base recorded there.
func observeEdge(fromState, toState *StateConfig, fromCanon, toCanon bool, fromBase, toBase byte, lDisc, rDisc bool) {
	// `from`'s right side connects to `to` (in non-canonical orientation)
	// through fromBase, the (k+1)-mer's last base; if `from` was stored
	// canonicalized, the edge instead attaches to its left side and the
	// neighbour base complements. lDisc and rDisc mark the opposite,
	// outward-facing side of `from` and `to` respectively.
	fromSide, fb := sideAndBase(fromCanon, true, fromBase)
	switch fromSide {
	case sideLeft:
		fromState.Left.Observe(fb)
		fromState.Right.Disc = fromState.Right.Disc || lDisc
	case sideRight:
		fromState.Right.Observe(fb)
		fromState.Left.Disc = fromState.Left.Disc || lDisc
	}

	toSide, tb := sideAndBase(toCanon, false, toBase)
	switch toSide {
	case sideLeft:
		toState.Left.Observe(tb)
		toState.Right.Disc = toState.Right.Disc || rDisc
	case sideRight:
		toState.Right.Observe(tb)
		toState.Left.Disc = toState.Left.Disc || rDisc
	}
}

type vertexSide int

const (
	sideLeft vertexSide = iota
	sideRight
)

// sideAndBase computes which side of a *canonical* vertex an edge
// attaches to, and the neighbour base to record there, given whether the
// observed (non-canonical) k-mer required reverse-complementing to reach
// its canonical form and whether the edge departs from its right side
// (onRight=true, as the "from" endpoint of a (k+1)-mer) or arrives at its
// left side (onRight=false, as the "to" endpoint).
//
// Reverse-complementing a k-mer swaps its left/right sides and
// complements every base; this helper applies that flip once so callers
// never reason about orientation directly.
func sideAndBase(wasCanonicalized bool, onRight bool, neighbourBase byte) (vertexSide, byte) {
	side := sideRight
	if !onRight {
		side = sideLeft
	}
	b := neighbourBase
	if wasCanonicalized {
		if side == sideRight {
			side = sideLeft
		} else {
			side = sideRight
		}
		b = 3 - b
	}
	return side, b
}

// canonicalize returns m's canonical form and whether reverse-complement
// was required to reach it.
func canonicalize(m kmer.Kmer) (kmer.Kmer, bool) {
	canon := m.Canonical()
	return canon, !canon.Equal(m)
}
