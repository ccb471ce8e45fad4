// Package color implements the optional color engine of spec.md section
// 4.7: every color-shift vertex's sorted, deduplicated source-id set is
// hashed, and the color table guarantees at most one worker ever
// materialises a given distinct color-set into the per-worker color
// repository, while every other worker simply reads the coordinate it
// published.
//
// The at-most-once-materialisation table is grounded on teacher core/'s
// RWMutex-guarded single-owner mutation idiom, generalized from "one
// mutex over the whole structure" to "one lock-free CAS per open-
// addressed slot", per spec.md's own design note on the color
// coordinate's shared-mutability. Hashing uses cespare/xxhash/v2, the
// same hash the rest of this module uses for k-mers and minimizers.
package color
