// Package atlas implements the on-disk super-k-mer bucket storage that
// the Partitioner writes into and the Subgraph engine reads from
// (spec.md sections 3 "Atlas / bucket" and 4.1 "Concurrency").
//
// An Atlas groups GraphsPerAtlas subgraphs behind one shared in-memory
// buffer: workers merge their local records into the shared buffer
// under a short lock, and once it fills, swap it with a spare flush
// buffer under a second lock and demultiplex the full buffer's records
// into each subgraph's own on-disk Bucket (shard) without blocking new
// writers — the double-mutex swap protocol named in spec.md section 5
// "Shared resources", adapted from teacher core/types.go's two-RWMutex
// (muVert / muEdgeAdj) idiom, generalized here from read/write
// separation to swap/flush separation.
package atlas
