package color

import "github.com/cespare/xxhash/v2"

// SortedUnique collapses a non-decreasing run of source ids (spec.md
// section 4.7's "Source-id ordering invariant": colored-mode batching
// guarantees super-k-mers touching a vertex arrive in non-decreasing
// source-id order) into its deduplicated sorted set, without a separate
// sort pass.
func SortedUnique(sourceIDs []int32) []int32 {
	if len(sourceIDs) == 0 {
		return nil
	}
	out := make([]int32, 0, len(sourceIDs))
	out = append(out, sourceIDs[0])
	for _, id := range sourceIDs[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// Hash derives a color-set's table key from its sorted, deduplicated
// source-id set.
func Hash(sourceIDs []int32) uint64 {
	buf := make([]byte, 4*len(sourceIDs))
	for i, id := range sourceIDs {
		buf[4*i] = byte(id)
		buf[4*i+1] = byte(id >> 8)
		buf[4*i+2] = byte(id >> 16)
		buf[4*i+3] = byte(id >> 24)
	}
	return xxhash.Sum64(buf)
}
