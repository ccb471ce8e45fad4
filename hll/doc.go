// Package hll implements a HyperLogLog cardinality estimator used to
// size each subgraph's fixed-capacity hash table from an estimate of
// its distinct canonical k-mer (vertex) count before any k-mer is
// inserted (spec.md
// section 4.2 "Construction", section 5 "Memory bounds").
//
// The accumulate-while-streaming shape is grounded on teacher
// matrix/impl_statistics.go's single-pass accumulator pattern,
// generalized here from scalar sums to a register-array sketch.
package hll
