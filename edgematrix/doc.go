// Package edgematrix holds the upper-triangular P x P collection of
// append-only Discontinuity_Edge buckets described in spec.md section
// 4.3: cell (i,j), 0 <= i <= j <= P, where P is the number of vertex
// partitions. Column 0 holds ϕ-incident edges.
//
// The storage shape is grounded on teacher matrix/dense.go's flat
// row-major array with bounds-checked indexOf addressing; here the flat
// array holds *atlas.Bucket cells instead of float64s, and indexOf
// additionally enforces row <= col.
package edgematrix
