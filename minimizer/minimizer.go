package minimizer

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/dbgc/kmer"
)

// ErrBadL indicates l fell outside [1, 32] or exceeded the window length.
var ErrBadL = errors.New("minimizer: l out of range")

// Result is the minimizer of a window: its packed value (MSB-first, see
// kmer.Kmer.PackedMSBFirst), its hash, and the 0-indexed offset of its
// start within the window.
type Result struct {
	Value  uint64
	Hash   uint64
	Offset int
}

// less reports whether a should replace b as the current minimizer:
// smaller hash wins; on a hash tie, smaller integer value wins (the
// documented, otherwise-vacuous tie-break — spec.md section 9).
func less(aHash, aValue, bHash, bValue uint64) bool {
	if aHash != bHash {
		return aHash < bHash
	}
	return aValue < bValue
}

func hashLmer(value uint64, l int, seed uint64) uint64 {
	var buf [24]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(value >> (8 * uint(i)))
	}
	for i := 0; i < 8; i++ {
		buf[8+i] = byte(uint64(l) >> (8 * uint(i)))
	}
	for i := 0; i < 8; i++ {
		buf[16+i] = byte(seed >> (8 * uint(i)))
	}
	return xxhash.Sum64(buf[:])
}

// Of computes the minimizer of window by brute force, scanning every
// l-mer it contains. Intended for small windows, tests, and
// cross-checking the streaming Iterator; the Partitioner uses Iterator
// for amortized O(1) per base on long fragments.
//
// Complexity: O(len(window) * l).
func Of(window kmer.Kmer, l int, seed uint64) (Result, error) {
	w := window.K()
	if l < 1 || l > 32 || l > w {
		return Result{}, fmt.Errorf("%w: l=%d window=%d", ErrBadL, l, w)
	}
	var best Result
	for off := 0; off+l <= w; off++ {
		sub := window.Sub(off, l)
		val := sub.PackedMSBFirst()
		h := hashLmer(val, l, seed)
		if off == 0 || less(h, val, best.Hash, best.Value) {
			best = Result{Value: val, Hash: h, Offset: off}
		}
	}
	return best, nil
}
