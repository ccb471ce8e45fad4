package minimizer

import "fmt"

// candidate is one l-mer seen by the streaming Iterator, still inside
// the trailing window of the most recently completed (k-1)-mer.
type candidate struct {
	hash  uint64
	value uint64
	start int // 0-indexed start offset of this l-mer within the fragment
}

// Iterator computes the minimizer of every (k-1)-mer window as bases
// are pushed one at a time, in amortized O(1) time per base via a
// monotonic deque of l-mer candidates (evicted from the back when
// dominated, from the front when they fall outside the trailing
// window).
//
// Iterator is not safe for concurrent use; package partition gives each
// worker its own Iterator per fragment.
type Iterator struct {
	l       int
	width   int // (k-1), the window length in bases
	seed    uint64
	lmerMax uint64 // (1 << 2l) - 1

	lmer      uint64
	basesSeen int
	deque     []candidate
}

// NewIterator returns an Iterator producing the minimizer of every
// (kMinus1)-base window, ranking l-mers by seeded hash.
func NewIterator(kMinus1, l int, seed uint64) (*Iterator, error) {
	if l < 1 || l > 32 || l > kMinus1 {
		return nil, fmt.Errorf("%w: l=%d window=%d", ErrBadL, l, kMinus1)
	}
	return &Iterator{
		l:       l,
		width:   kMinus1,
		seed:    seed,
		lmerMax: (uint64(1) << uint(2*l)) - 1,
	}, nil
}

// Push feeds one more base (kmer.A/C/G/T) into the stream and reports
// whether a full (k-1)-mer window is now available; if so, Current
// returns its minimizer.
//
// Complexity: amortized O(1).
func (it *Iterator) Push(base byte) bool {
	it.lmer = ((it.lmer << 2) | uint64(base&3)) & it.lmerMax
	it.basesSeen++

	if it.basesSeen >= it.l {
		start := it.basesSeen - it.l
		h := hashLmer(it.lmer, it.l, it.seed)
		for len(it.deque) > 0 {
			back := it.deque[len(it.deque)-1]
			if less(h, it.lmer, back.hash, back.value) {
				it.deque = it.deque[:len(it.deque)-1]
				continue
			}
			break
		}
		it.deque = append(it.deque, candidate{hash: h, value: it.lmer, start: start})
	}

	ready := it.basesSeen >= it.width
	if ready {
		windowStart := it.basesSeen - it.width
		for len(it.deque) > 0 && it.deque[0].start < windowStart {
			it.deque = it.deque[1:]
		}
	}
	return ready
}

// Current returns the minimizer of the most recently completed
// (k-1)-mer window. Callers must only call Current after Push returned
// true.
func (it *Iterator) Current() Result {
	front := it.deque[0]
	return Result{
		Value:  front.value,
		Hash:   front.hash,
		Offset: front.start - (it.basesSeen - it.width),
	}
}

// CurrentAbsoluteStart returns the absolute 0-indexed fragment offset
// at which the current minimizer's l-mer begins, as opposed to
// Current().Offset which is relative to the active window.
func (it *Iterator) CurrentAbsoluteStart() int {
	return it.deque[0].start
}

// Reset clears the iterator's state so it can be reused for a new
// fragment without reallocating its deque backing array.
func (it *Iterator) Reset() {
	it.lmer = 0
	it.basesSeen = 0
	it.deque = it.deque[:0]
}
