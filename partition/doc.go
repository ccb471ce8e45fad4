// Package partition implements the Partitioner (spec.md section 4.1):
// a reader/worker pool that turns admissible fragments into super-k-mer
// records written to the owning subgraph's atlas.
//
// The boundary-detection state machine is grounded on teacher
// dfs/cycle.go's three-color (white/gray/black) visitation idiom,
// repurposed here from "detect a back-edge" to "detect a subgraph-id
// change or a length overflow while scanning a fragment's rolling
// minimizer"; the worker-pool shape is grounded on
// golang.org/x/sync/errgroup, the bounded-concurrency library the
// reference corpus's I/O-heavy packages reach for.
package partition
