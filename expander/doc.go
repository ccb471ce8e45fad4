// Package expander back-propagates PathInfo(p, r, o) — which maximal
// unitig a vertex belongs to, its rank along it, and its orientation —
// from the meta-vertices that survived contraction down to every vertex
// contractor eliminated along the way (spec.md section 4.5).
//
// The propagation shape is grounded on teacher gridgraph/expand.go's
// ExpandIsland: that function starts from a known frontier (src cells)
// and flood-fills outward until it has assigned every reachable cell a
// distance; expander starts from a known frontier (surviving
// meta-vertices with assigned PathInfo) and flood-fills backward through
// contractor's D_j side files, column by column, until every eliminated
// vertex has inherited a PathInfo.
package expander
