package edgematrix

import "github.com/katalvlaran/dbgc/kmer"

// PartitionOf computes the vertex-partition index used to route a
// canonical k-mer to an edge-matrix row/column, per spec.md section
// 4.3: "partition(v) = hash(v) & (P - 1)". p must be a power of two.
func PartitionOf(v kmer.Kmer, p int, seed uint64) int {
	return int(v.Hash(seed) & uint64(p-1))
}

// CellFor returns the (row, col) cell that houses an edge between
// vertices partitioned px and py: "entries live only where partition(x)
// <= partition(y)" (spec.md section 4.3).
func CellFor(px, py int) (row, col int) {
	if px <= py {
		return px, py
	}
	return py, px
}
