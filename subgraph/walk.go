package subgraph

import (
	"strings"

	"github.com/katalvlaran/dbgc/kmer"
)

// extendStep reports the outcome of trying to extend a walk one base
// past cur on its trailing side (right side when walking forward, left
// side when walking backward after the orientation flip handled by
// callers): the next k-mer in walk orientation, or a Termination when
// the walk cannot continue.
type extendStep struct {
	next kmer.Kmer
	ok   bool
	term Termination
}

// extendRight follows cur's right side one base forward, per spec.md
// section 4.2: "follow the unique neighbour whenever the opposite side
// has edge-count = 1 and the neighbour's incoming side also has
// edge-count = 1; otherwise stop."
func extendRight(table *HashTable, cur kmer.Kmer) extendStep {
	canon, wasCanon := canonicalize(cur)
	state, found := table.Get(canon)
	if !found {
		return extendStep{term: TermChainEnd}
	}
	side := state.Right
	if wasCanon {
		side = state.Left
	}
	if side.Disc {
		return extendStep{term: TermDisc}
	}
	switch side.Degree() {
	case 0:
		return extendStep{term: TermChainEnd}
	case 2:
		return extendStep{term: TermBranch}
	}
	nb, _ := side.NeighbourBase()
	if wasCanon {
		nb = 3 - nb
	}
	next, err := cur.RollForward(kmer.SymbolFor(nb))
	if err != nil {
		return extendStep{term: TermChainEnd}
	}

	// The far vertex's entering side must also be degree 1 (spec.md
	// section 4.2's "and the neighbour's incoming side also has
	// edge-count = 1"), otherwise next is itself a branch/disc point and
	// the walk must stop at cur rather than continue through it.
	nextCanon, nextWasCanon := canonicalize(next)
	nextState, found := table.Get(nextCanon)
	if !found {
		return extendStep{term: TermChainEnd}
	}
	entry := nextState.Left
	if nextWasCanon {
		entry = nextState.Right
	}
	if entry.Disc {
		return extendStep{term: TermDisc}
	}
	if entry.Degree() != 1 {
		return extendStep{term: TermBranch}
	}
	return extendStep{next: next, ok: true}
}

// extendLeft is extendRight's mirror, following cur's left side one base
// backward.
func extendLeft(table *HashTable, cur kmer.Kmer) extendStep {
	canon, wasCanon := canonicalize(cur)
	state, found := table.Get(canon)
	if !found {
		return extendStep{term: TermChainEnd}
	}
	side := state.Left
	if wasCanon {
		side = state.Right
	}
	if side.Disc {
		return extendStep{term: TermDisc}
	}
	switch side.Degree() {
	case 0:
		return extendStep{term: TermChainEnd}
	case 2:
		return extendStep{term: TermBranch}
	}
	nb, _ := side.NeighbourBase()
	if wasCanon {
		nb = 3 - nb
	}
	prev, err := cur.RollBackward(kmer.SymbolFor(nb))
	if err != nil {
		return extendStep{term: TermChainEnd}
	}

	prevCanon, prevWasCanon := canonicalize(prev)
	prevState, found := table.Get(prevCanon)
	if !found {
		return extendStep{term: TermChainEnd}
	}
	entry := prevState.Right
	if prevWasCanon {
		entry = prevState.Left
	}
	if entry.Disc {
		return extendStep{term: TermDisc}
	}
	if entry.Degree() != 1 {
		return extendStep{term: TermBranch}
	}
	return extendStep{next: prev, ok: true}
}

// WalkUnitig traverses maximally in both directions from an unvisited
// vertex, materializing the resulting k-mer sequence as an LmTig
// (spec.md section 4.2). Every vertex consumed by the walk, including
// start, is marked visited in table so the caller's outer loop skips it.
func WalkUnitig(table *HashTable, start kmer.Kmer) LmTig {
	startCanon, _ := canonicalize(start)
	table.MarkVisited(startCanon)

	seq := []byte(start.String())
	tig := LmTig{LeftTerm: TermChainEnd, RightTerm: TermChainEnd}

	cur := start
	firstStep := true
	for {
		step := extendRight(table, cur)
		if !step.ok {
			tig.RightTerm = step.term
			tig.RightDisc = step.term == TermDisc
			break
		}
		nextCanon, _ := canonicalize(step.next)
		if nextCanon.Equal(startCanon) {
			if firstStep {
				tig.RightTerm = TermIsolatedPalindrome
				tig.Cycle = true
			} else {
				tig.RightTerm = TermCycle
				tig.Cycle = true
			}
			break
		}
		table.MarkVisited(nextCanon)
		s := step.next.String()
		seq = append(seq, s[len(s)-1])
		cur = step.next
		firstStep = false
	}

	if !tig.Cycle {
		cur = start
		for {
			step := extendLeft(table, cur)
			if !step.ok {
				tig.LeftTerm = step.term
				tig.LeftDisc = step.term == TermDisc
				break
			}
			prevCanon, _ := canonicalize(step.next)
			if prevCanon.Equal(startCanon) {
				tig.LeftTerm = TermCycle
				tig.Cycle = true
				break
			}
			table.MarkVisited(prevCanon)
			s := step.next.String()
			seq = append([]byte{s[0]}, seq...)
			cur = step.next
		}
	}

	tig.Sequence = string(seq)
	if tig.Cycle {
		tig.Sequence = rotateToCanonicalMinimum(tig.Sequence, start.K())
	}
	return tig
}

// rotateToCanonicalMinimum rotates a cycle's sequence so that its
// canonical k-mer of minimum rank sits at offset 0, per spec.md section
// 4.2: "Pivot choice for cycle output is the canonical k-mer of minimum
// rank in the cycle, and the cycle's sequence is rotated so that that
// k-mer is at offset 0." This is a brute-force O(n^2) scan, not Booth's
// algorithm: cycle lengths here are unitig lengths, not large enough to
// need Booth's linear-time rotation.
//
// seq, as WalkUnitig builds it, is one base short of a full second lap:
// its true period (the number of distinct vertices the walk closed
// over) is period = len(seq)-k+1, and seq's trailing k-1 bases are
// simply a repeat of its own leading k-1 bases. Scanning all len(seq)
// rotations of seq+seq, rather than just the `period` rotations of the
// underlying repeating block, would compare against k-mers straddling
// that seam — positions that are not actually vertices of the cycle —
// and could let a spurious seam k-mer outrank every real one.
func rotateToCanonicalMinimum(seq string, k int) string {
	n := len(seq)
	if n == 0 {
		return seq
	}
	period := n - k + 1
	block := seq[:period]
	doubled := strings.Repeat(block, n/period+2)

	bestOffset := 0
	best := kmer.MustEncode(doubled[0:k]).Canonical()
	for offset := 1; offset < period; offset++ {
		cand := kmer.MustEncode(doubled[offset : offset+k]).Canonical()
		if cand.Less(best) {
			best = cand
			bestOffset = offset
		}
	}
	return doubled[bestOffset : bestOffset+n]
}
