// Package dbgc compacts a de Bruijn graph built from large nucleotide
// sequence collections into its maximal unitigs, with an optional
// per-vertex color assignment mapping each k-mer to the set of input
// sources it was observed in.
//
// 🚀 What is dbgc?
//
//	An out-of-core, parallel compaction pipeline that turns arbitrarily
//	many FASTA/FASTQ-derived k-mers into a compact set of non-branching
//	paths ("unitigs"), without ever materializing the full graph in
//	memory:
//
//	  • Partition   — stream records, extract super-k-mers, route by minimizer
//	  • Subgraph    — materialize each partition's local graph, walk unitigs
//	  • Contract    — eliminate cross-partition chains column by column
//	  • Expand      — back-propagate path identity to every eliminated vertex
//	  • Collate     — stitch local unitigs into final maximal unitigs
//	  • Color       — optionally tag every vertex with its source set
//
// ✨ Why dbgc?
//
//   - Out-of-core    — bounded memory regardless of input size
//   - Parallel       — bounded worker pools in partitioning and contraction (golang.org/x/sync/errgroup)
//   - Deterministic  — canonical k-mers, canonical cycle rotation, stable path ids
//
// Under the hood, each pipeline stage lives in its own subpackage:
//
//	kmer/        — 2-bit-packed k-mer value type, canonical form, hashing
//	minimizer/   — windowed minimizer selection over (k-1)-mers
//	seqio/       — external fragment-source contract (FASTA/FASTQ/KMC-bin)
//	hll/         — HyperLogLog cardinality estimation
//	atlas/       — on-disk bucket storage and subgraph-id partitioning
//	partition/   — the Partitioner (stage a)
//	subgraph/    — the Subgraph engine (stage b)
//	edgematrix/  — the discontinuity edge matrix (shared structure)
//	contractor/  — the Discontinuity-graph contractor (stage c)
//	expander/    — the Expander (stage d)
//	collate/     — the Collator (stage e)
//	color/       — the Color engine (stage f, optional)
//	config/      — pipeline configuration and validation
//	pipeline/    — orchestration wiring the stages together
//
// See SPEC_FULL.md for the full specification and DESIGN.md for the
// grounding ledger explaining how each package was derived.
package dbgc
