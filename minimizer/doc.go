// Package minimizer computes the minimizer of a (k-1)-mer window — the
// l-mer within it with the smallest 64-bit hash, ties broken by integer
// value — and streams minimizers across a long fragment with an
// amortized O(1)-per-base sliding window.
//
// The streaming Iterator is grounded on the same windowed-scan shape
// teacher's dtw package uses to slide a banded window across two
// sequences (dtw.go): a monotonic deque of candidates evicted from both
// ends as the window advances, generalized here from "minimum alignment
// cost in the band" to "minimum-hash l-mer in the window".
package minimizer
