package edgematrix

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/dbgc/kmer"
)

// Side names which end of a k-mer's two discontinuity slots an
// Endpoint refers to, per spec.md section 3: "s_x,s_y in {front,back}".
type Side byte

const (
	Front Side = iota
	Back
)

// Endpoint is one end of a Discontinuity_Edge: either a real canonical
// k-mer and the side it attaches by, or the ϕ sentinel representing a
// chain end (spec.md section 3).
type Endpoint struct {
	Vertex kmer.Kmer
	Side   Side
	IsPhi  bool
}

// Edge is the Discontinuity_Edge tuple of spec.md section 3: "(x, s_x,
// y, s_y, w, b, b_idx, x_is_phi, y_is_phi) ... w >= 1 is the number of
// internal edges the edge summarises after contraction, (b, b_idx)
// locate the associated lm-tig in on-disk bucketed storage."
type Edge struct {
	X, Y        Endpoint
	Weight      int
	Bucket      int // b: lm-tig bucket id
	BucketIndex int // b_idx: record index within that bucket
}

// encodeEndpoint/decodeEndpoint serialize an Endpoint as: isPhi(1) side(1)
// k(1) packed-kmer-bytes. ϕ endpoints still need `k` so the reader knows
// how many (unused) packed bytes follow for fixed framing simplicity;
// here we simply emit k=0 and no bytes for ϕ.
func encodeEndpoint(e Endpoint) []byte {
	if e.IsPhi {
		return []byte{1, byte(e.Side), 0}
	}
	packed, _ := kmer.PackBases([]byte(e.Vertex.String()))
	out := make([]byte, 0, 3+len(packed))
	out = append(out, 0, byte(e.Side), byte(e.Vertex.K()))
	out = append(out, packed...)
	return out
}

func decodeEndpoint(b []byte) (Endpoint, int, error) {
	if len(b) < 3 {
		return Endpoint{}, 0, fmt.Errorf("%w: endpoint header truncated", ErrCellRange)
	}
	isPhi := b[0] == 1
	side := Side(b[1])
	k := int(b[2])
	if isPhi {
		return Endpoint{Side: side, IsPhi: true}, 3, nil
	}
	packedLen := (k + 3) / 4
	if len(b) < 3+packedLen {
		return Endpoint{}, 0, fmt.Errorf("%w: endpoint body truncated", ErrCellRange)
	}
	bases := kmer.UnpackBases(b[3:3+packedLen], k)
	v, err := kmer.Encode(bases)
	if err != nil {
		return Endpoint{}, 0, err
	}
	return Endpoint{Vertex: v, Side: side, IsPhi: false}, 3 + packedLen, nil
}

// Encode serializes e for storage in a matrix cell's underlying bucket.
func (e Edge) Encode() []byte {
	xb := encodeEndpoint(e.X)
	yb := encodeEndpoint(e.Y)
	buf := make([]byte, 4+4+4+4+4+len(xb)+4+len(yb))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], uint32(e.Weight))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(e.Bucket))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(e.BucketIndex))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(xb)))
	off += 4
	copy(buf[off:], xb)
	off += len(xb)
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(yb)))
	off += 4
	copy(buf[off:], yb)
	return buf
}

// DecodeEdge is the inverse of Edge.Encode.
func DecodeEdge(b []byte) (Edge, error) {
	if len(b) < 20 {
		return Edge{}, fmt.Errorf("%w: edge record truncated", ErrCellRange)
	}
	off := 0
	weight := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	bucket := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	bucketIdx := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	xLen := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	if len(b) < off+int(xLen)+4 {
		return Edge{}, fmt.Errorf("%w: edge record truncated", ErrCellRange)
	}
	x, _, err := decodeEndpoint(b[off : off+xLen])
	if err != nil {
		return Edge{}, err
	}
	off += xLen
	yLen := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	if len(b) < off+int(yLen) {
		return Edge{}, fmt.Errorf("%w: edge record truncated", ErrCellRange)
	}
	y, _, err := decodeEndpoint(b[off : off+yLen])
	if err != nil {
		return Edge{}, err
	}

	return Edge{X: x, Y: y, Weight: weight, Bucket: bucket, BucketIndex: bucketIdx}, nil
}
