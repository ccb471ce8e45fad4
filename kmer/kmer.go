package kmer

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Base values for the 4-letter nucleotide alphabet, 2 bits each.
const (
	A byte = 0
	C byte = 1
	G byte = 2
	T byte = 3
)

// MaxK is the largest supported k-mer length: two uint64 words give 128
// bits of storage, i.e. up to 64 bases, but spec.md caps k at 63 so that
// k+1-mers (used for edge extraction) also fit.
const MaxK = 63

// Sentinel errors for kmer construction and decoding.
var (
	// ErrBadLength indicates a requested k-mer length outside [1, MaxK].
	ErrBadLength = errors.New("kmer: length out of range")

	// ErrBadSymbol indicates a byte outside {A,C,G,T,a,c,g,t} in input.
	ErrBadSymbol = errors.New("kmer: invalid nucleotide symbol")
)

// Kmer is an immutable, fixed-width, 2-bit-packed sequence of k bases.
// The zero value is not a valid Kmer; use Encode or MustEncode to
// construct one.
type Kmer struct {
	k      int
	lo, hi uint64
}

// K returns the number of bases encoded.
func (m Kmer) K() int { return m.k }

// BaseAt returns the 2-bit base code at position i (0 = leftmost / 5'
// base).
func (m Kmer) BaseAt(i int) byte { return m.baseAt(i) }

// baseAt returns the base at position i (0 = leftmost / 5' base).
func (m Kmer) baseAt(i int) byte {
	if i < 32 {
		return byte(m.lo>>(uint(i)*2)) & 3
	}
	return byte(m.hi>>(uint(i-32)*2)) & 3
}

// setBaseAt returns a copy of m with position i set to base b.
func (m Kmer) setBaseAt(i int, b byte) Kmer {
	b &= 3
	if i < 32 {
		shift := uint(i) * 2
		m.lo = (m.lo &^ (3 << shift)) | (uint64(b) << shift)
	} else {
		shift := uint(i-32) * 2
		m.hi = (m.hi &^ (3 << shift)) | (uint64(b) << shift)
	}
	return m
}

// mask returns m with any bits beyond position k-1 cleared, keeping the
// value canonical for comparisons and hashing.
func (m Kmer) mask() Kmer {
	if m.k >= 32 {
		hiBits := uint(m.k-32) * 2
		if hiBits < 64 {
			m.hi &= (uint64(1) << hiBits) - 1
		}
	} else {
		loBits := uint(m.k) * 2
		m.lo &= (uint64(1) << loBits) - 1
		m.hi = 0
	}
	return m
}

// symbolToBase maps an ASCII nucleotide byte to its 2-bit code.
func symbolToBase(c byte) (byte, error) {
	switch c {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadSymbol, c)
	}
}

// SymbolFor maps a 2-bit base code back to its upper-case ASCII symbol,
// for callers (package subgraph) that track bases as 2-bit codes and
// need to feed RollForward/RollBackward.
func SymbolFor(b byte) byte { return baseToSymbol(b) }

// baseToSymbol maps a 2-bit code back to its upper-case ASCII symbol.
func baseToSymbol(b byte) byte {
	switch b & 3 {
	case A:
		return 'A'
	case C:
		return 'C'
	case G:
		return 'G'
	default:
		return 'T'
	}
}

// Encode packs the nucleotide bytes in seq (len(seq) == k) into a Kmer.
//
// Complexity: O(k).
func Encode(seq []byte) (Kmer, error) {
	k := len(seq)
	if k < 1 || k > MaxK {
		return Kmer{}, fmt.Errorf("%w: %d", ErrBadLength, k)
	}
	m := Kmer{k: k}
	for i, c := range seq {
		b, err := symbolToBase(c)
		if err != nil {
			return Kmer{}, err
		}
		m = m.setBaseAt(i, b)
	}
	return m, nil
}

// MustEncode is like Encode but panics on error; useful in tests and
// example code where the input is a compile-time literal.
func MustEncode(seq string) Kmer {
	m, err := Encode([]byte(seq))
	if err != nil {
		panic(err)
	}
	return m
}

// String decodes m back into its upper-case nucleotide representation.
//
// Complexity: O(k).
func (m Kmer) String() string {
	out := make([]byte, m.k)
	for i := 0; i < m.k; i++ {
		out[i] = baseToSymbol(m.baseAt(i))
	}
	return string(out)
}

// Equal reports whether m and n encode the same bases at the same
// length.
func (m Kmer) Equal(n Kmer) bool {
	return m.k == n.k && m.lo == n.lo && m.hi == n.hi
}

// Less defines the lexicographic (base-by-base, left to right) total
// order used to pick the canonical form and the minimum-rank pivot of a
// cycle. Kmers of different length are ordered shorter-first.
//
// Complexity: O(k).
func (m Kmer) Less(n Kmer) bool {
	if m.k != n.k {
		return m.k < n.k
	}
	for i := 0; i < m.k; i++ {
		a, b := m.baseAt(i), n.baseAt(i)
		if a != b {
			return a < b
		}
	}
	return false
}

// ReverseComplement returns the reverse complement of m: each base
// complemented (A<->T, C<->G) and the order reversed.
//
// Complexity: O(k).
func (m Kmer) ReverseComplement() Kmer {
	out := Kmer{k: m.k}
	for i := 0; i < m.k; i++ {
		out = out.setBaseAt(m.k-1-i, 3-m.baseAt(i))
	}
	return out
}

// Canonical returns the lexicographically smaller of m and its reverse
// complement. Because k is required to be odd, m can never equal its
// own reverse complement, so the comparison is never a tie.
func (m Kmer) Canonical() Kmer {
	rc := m.ReverseComplement()
	if rc.Less(m) {
		return rc
	}
	return m
}

// IsCanonical reports whether m already equals its own Canonical form.
func (m Kmer) IsCanonical() bool {
	return m.Equal(m.Canonical())
}

// RollForward returns the k-mer obtained by dropping the leftmost base
// of m and appending next on the right: it represents sliding the
// reading frame one base forward.
//
// Complexity: O(k).
func (m Kmer) RollForward(next byte) (Kmer, error) {
	b, err := symbolToBase(next)
	if err != nil {
		return Kmer{}, err
	}
	out := Kmer{k: m.k}
	for i := 0; i < m.k-1; i++ {
		out = out.setBaseAt(i, m.baseAt(i+1))
	}
	out = out.setBaseAt(m.k-1, b)
	return out, nil
}

// RollBackward returns the k-mer obtained by dropping the rightmost
// base of m and prepending prev on the left: the symmetric counterpart
// to RollForward.
//
// Complexity: O(k).
func (m Kmer) RollBackward(prev byte) (Kmer, error) {
	b, err := symbolToBase(prev)
	if err != nil {
		return Kmer{}, err
	}
	out := Kmer{k: m.k}
	out = out.setBaseAt(0, b)
	for i := 1; i < m.k; i++ {
		out = out.setBaseAt(i, m.baseAt(i-1))
	}
	return out, nil
}

// Prefix returns the first n bases of m as their own Kmer (n <= m.k).
func (m Kmer) Prefix(n int) Kmer {
	out := Kmer{k: n}
	for i := 0; i < n; i++ {
		out = out.setBaseAt(i, m.baseAt(i))
	}
	return out
}

// Suffix returns the last n bases of m as their own Kmer (n <= m.k).
func (m Kmer) Suffix(n int) Kmer {
	off := m.k - n
	out := Kmer{k: n}
	for i := 0; i < n; i++ {
		out = out.setBaseAt(i, m.baseAt(off+i))
	}
	return out
}

// Sub extracts the n bases starting at offset as their own Kmer.
func (m Kmer) Sub(offset, n int) Kmer {
	out := Kmer{k: n}
	for i := 0; i < n; i++ {
		out = out.setBaseAt(i, m.baseAt(offset+i))
	}
	return out
}

// PackedMSBFirst packs m's bases into a single uint64 with base 0 (the
// leftmost / oldest base) at the most significant end, so that integer
// comparison of the result agrees with lexicographic base order. Only
// valid for k <= 32; callers (package minimizer) never exceed that.
func (m Kmer) PackedMSBFirst() uint64 {
	var v uint64
	for i := 0; i < m.k; i++ {
		v = (v << 2) | uint64(m.baseAt(i))
	}
	return v
}

// SplitKPlus1 decodes a (k+1)-mer into its prefix k-mer (bases
// [0,k)) and suffix k-mer (bases [1,k+1)), the two k-mers whose edge
// the (k+1)-mer represents in the de Bruijn graph.
func SplitKPlus1(m Kmer) (prefix, suffix Kmer) {
	return m.Prefix(m.k - 1), m.Suffix(m.k - 1)
}

// bytes returns the little-endian byte representation of the packed
// value actually used (k <= 32 => 8 bytes, else 16), for hashing.
func (m Kmer) bytes() []byte {
	n := 8
	if m.k > 32 {
		n = 16
	}
	buf := make([]byte, n)
	putUint64LE(buf[0:8], m.lo)
	if n == 16 {
		putUint64LE(buf[8:16], m.hi)
	}
	return buf
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

// Hash returns the 64-bit seeded hash of m, combining its packed bytes
// and length with seed so that k-mers of different length never
// collide purely from zero-padding.
//
// Complexity: O(k/32), i.e. effectively O(1).
func (m Kmer) Hash(seed uint64) uint64 {
	d := xxhash.New()
	_, _ = d.Write(m.bytes())
	var lenSeed [16]byte
	putUint64LE(lenSeed[0:8], uint64(m.k))
	putUint64LE(lenSeed[8:16], seed)
	_, _ = d.Write(lenSeed[:])
	return d.Sum64()
}
