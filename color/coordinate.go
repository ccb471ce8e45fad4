package color

import (
	"runtime"
	"sync/atomic"
)

// Coordinate packs a color-set's location in the distributed per-worker
// color repositories: which worker materialised it and at what index in
// that worker's bucket (spec.md section 4.7's ColorCoordinate: "worker-id
// : 8 bits, intra-worker bucket index : 32 bits").
type Coordinate struct {
	WorkerID    uint8
	BucketIndex uint32
}

const (
	stateEmpty uint8 = iota
	stateInProcess
	stateFinal
)

func packWord(state, worker uint8, bucketIndex uint32) uint64 {
	return uint64(state)<<40 | uint64(worker)<<32 | uint64(bucketIndex)
}

func unpackWord(w uint64) (state, worker uint8, bucketIndex uint32) {
	return uint8(w >> 40), uint8(w >> 32), uint32(w)
}

// Table is the open-addressed color table M_c of spec.md section 4.7:
// hash64 -> Coordinate, with per-slot CAS so at most one worker ever
// materialises a given color-set while every other worker can read a
// published coordinate without blocking on a lock.
//
// Each slot is two atomic uint64 words: `hashes[i]` claims the slot for
// a distinct hash via CAS (0 means empty — an actual hash of exactly 0
// would collide with "empty" and get treated as a fresh slot every time;
// this is the same sentinel-value tradeoff spec.md's own hash tables
// accept elsewhere, and a 64-bit hash landing on exactly 0 is
// astronomically unlikely), and `words[i]` atomically carries the
// packed (state, worker, bucketIndex).
type Table struct {
	mask   uint64
	hashes []uint64
	words  []uint64
}

// NewTable allocates a table with room for capacity distinct color-sets.
// capacity must be a power of two.
func NewTable(capacity int) (*Table, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrCapacityNotPowerOfTwo
	}
	return &Table{
		mask:   uint64(capacity - 1),
		hashes: make([]uint64, capacity),
		words:  make([]uint64, capacity),
	}, nil
}

// ClaimOrWait implements spec.md section 4.7's protocol steps 1-3 for
// one worker encountering color-set hash h:
//
//  1. If h is unclaimed, this call wins the CAS and returns owned=true:
//     the caller must materialise the color-set and call Finalize.
//  2. If h is already claimed and in process (by this or another
//     worker), this call spins until it finalises, then returns the
//     published Coordinate with owned=false.
//  3. If h is already final, the Coordinate is returned immediately.
func (t *Table) ClaimOrWait(h uint64, worker uint8) (Coordinate, bool, error) {
	idx := h & t.mask
	for probed := uint64(0); probed <= t.mask; probed++ {
		cur := atomic.LoadUint64(&t.hashes[idx])
		if cur == 0 {
			if atomic.CompareAndSwapUint64(&t.hashes[idx], 0, h) {
				atomic.StoreUint64(&t.words[idx], packWord(stateInProcess, worker, 0))
				return Coordinate{WorkerID: worker}, true, nil
			}
			continue // another worker claimed this slot first; re-read it
		}
		if cur == h {
			for {
				w := atomic.LoadUint64(&t.words[idx])
				state, wkr, bidx := unpackWord(w)
				if state == stateFinal {
					return Coordinate{WorkerID: wkr, BucketIndex: bidx}, false, nil
				}
				runtime.Gosched()
			}
		}
		idx = (idx + 1) & t.mask
	}
	return Coordinate{}, false, ErrTableFull
}

// Finalize publishes the materialised coordinate for a color-set this
// worker just claimed via ClaimOrWait, clearing in_process.
func (t *Table) Finalize(h uint64, coord Coordinate) {
	idx := h & t.mask
	for atomic.LoadUint64(&t.hashes[idx]) != h {
		idx = (idx + 1) & t.mask
	}
	atomic.StoreUint64(&t.words[idx], packWord(stateFinal, coord.WorkerID, coord.BucketIndex))
}
