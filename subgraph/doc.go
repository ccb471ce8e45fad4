// Package subgraph materializes one partition's local de Bruijn graph
// in a fixed-capacity, open-addressing hash table and walks its
// maximal non-branching paths (spec.md section 4.2).
//
// The hash table itself (HashTable) is new — nothing in the teacher
// corpus supplies a fixed-capacity table with O(1)-amortized
// generation-counter clearing — but the walk/cycle/palindrome logic is
// grounded on teacher dfs/cycle.go's three-color (white/gray/black)
// visitation state machine, repurposed here from "detect a back-edge in
// a general graph" to "follow a degree-1 chain to its end"; its
// canonical-rotation shape is reused for rotating a discovered cycle so
// its minimum-rank k-mer sits at offset 0, by a brute-force scan over
// the cycle's rotations rather than Booth's algorithm.
package subgraph
