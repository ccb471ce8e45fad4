// Package contractor implements the column-by-column Discontinuity-graph
// contraction of spec.md section 4.4: for each vertex partition j in
// ascending order, the vertices living in column j's diagonal cell are
// eliminated by chaining their two incident edges into one, and every
// off-diagonal edge touching an eliminated vertex is rewritten to point
// at the far end of its chain.
//
// The column loop is grounded on teacher flow/dinic.go's phase-by-phase
// BFS/DFS structure (process one unit of work completely, in order,
// before moving to the next); the per-column elimination map is grounded
// on teacher prim_kruskal/kruskal.go's union-find find/union idiom,
// generalized from "representative vertex of a component" to
// "other end of a vertex's chain."
package contractor
