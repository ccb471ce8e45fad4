// Package seqio specifies the narrow contract the Partitioner consumes
// records through, without implementing FASTA/FASTQ parsing or
// decompression itself — both are external collaborators per spec.md
// section 1 ("Excluded").
//
// A FragmentSource yields Fragments: a source id plus a run of
// placeholder-free nucleotide letters, using the real bioinformatics
// sequence/alphabet types from github.com/biogo/biogo rather than ad
// hoc byte slices, so that a caller's existing biogo-based file reader
// can be adapted into a FragmentSource with a thin wrapper instead of a
// format-specific rewrite.
//
// BinReader is the alternative, KMC-style packed super-k-mer reader
// mentioned in spec.md section 6 ("a KMC-like super-k-mer bin reader").
package seqio
