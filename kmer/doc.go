// Package kmer implements the fixed-width, 2-bit-packed k-mer value
// type that underlies the whole compaction pipeline: encoding,
// canonical form, reverse complement, rolling extension, and 64-bit
// seeded hashing.
//
// A Kmer is immutable once constructed; every operation (RollForward,
// RollBackward, Canonical, ReverseComplement) returns a new value. Bases
// are packed 2 bits each, base index 0 at the lowest-order bits, in a
// 128-bit integer split across two uint64 words (lo, hi) — more than
// enough for k up to 63, the supported range (config.Config.K).
//
// Odd k is required so that no k-mer can equal its own reverse
// complement at a symmetric midpoint; Validate in package config
// enforces this before any Kmer is constructed from user input.
package kmer
