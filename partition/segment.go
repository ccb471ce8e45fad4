package partition

import (
	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/minimizer"
)

// Segment is one super-k-mer boundary detected within a fragment
// (spec.md section 4.1): a maximal run of consecutive k-mers whose
// (k-1)-prefix's minimizer selects the same subgraph, split early if it
// would otherwise exceed the maximum super-(k-1)-mer length.
type Segment struct {
	GraphID          int
	Start            int // 0-indexed base offset of the segment's first base
	Bases            int // number of bases the segment (as a run of k-mers) spans
	LDisc, RDisc     bool
	LJoined, RJoined bool
}

// Segments runs the boundary-detection state machine over one
// admissible fragment's 2-bit base codes (spec.md section 4.1's "State
// machine (boundary detection)"): tracks (prev_g, cur_g, next_g) via a
// rolling minimizer iterator over (k-1)-mers, and closes a run whenever
// the subgraph id changes or the run reaches the maximum super-(k-1)-mer
// length 2(k-1)-l.
func Segments(bases []byte, k, l, graphs int, seed uint64) ([]Segment, error) {
	if len(bases) < k+1 {
		return nil, ErrFragmentTooShort
	}
	kMinus1 := k - 1
	it, err := minimizer.NewIterator(kMinus1, l, seed)
	if err != nil {
		return nil, err
	}
	maxBasesInKMinus1Run := 2*kMinus1 - l
	maxKMinus1MersInRun := maxBasesInKMinus1Run - kMinus1 + 1

	var segs []Segment
	runStart := -1 // (k-1)-mer index where the current run began
	runG := -1
	runCount := 0

	closeRun := func(endExclusive int) {
		if runStart == -1 {
			return
		}
		seg := Segment{
			GraphID: runG,
			Start:   runStart,
			Bases:   (endExclusive - runStart) + kMinus1, // +1 base beyond the (k-1)-mer run, to span k-mers
		}
		if seg.Start+seg.Bases > len(bases) {
			seg.Bases = len(bases) - seg.Start // the fragment's last run has no base beyond it
		}
		seg.LJoined = len(segs) > 0
		if seg.LJoined {
			segs[len(segs)-1].RJoined = true
			if segs[len(segs)-1].GraphID != seg.GraphID {
				segs[len(segs)-1].RDisc = true
				seg.LDisc = true
			}
		}
		segs = append(segs, seg)
	}

	pos := 0
	for i := 0; i < len(bases); i++ {
		if !it.Push(bases[i]) {
			continue
		}
		g := atlas.SubgraphOf(it.Current().Hash, graphs)

		if runStart == -1 {
			runStart, runG, runCount = pos, g, 1
			pos++
			continue
		}
		if g != runG || runCount >= maxKMinus1MersInRun {
			closeRun(pos)
			runStart, runG, runCount = pos, g, 1
		} else {
			runCount++
		}
		pos++
	}
	closeRun(pos)
	return segs, nil
}
