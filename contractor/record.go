package contractor

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
)

// DiagonalRecord is one entry of a column's D_j side file: "entering
// eliminated vertex Vertex through EnterSide resolves to Other",
// persisted so expander can back-propagate PathInfo through eliminated
// vertices (spec.md section 4.5). A fully eliminated vertex contributes
// two records, one per entering side, since its front and back slots
// can resolve to different far ends.
type DiagonalRecord struct {
	Vertex    kmer.Kmer
	EnterSide edgematrix.Side
	Other     OtherEnd
}

func encodeVertex(v kmer.Kmer) []byte {
	packed, _ := kmer.PackBases([]byte(v.String()))
	out := make([]byte, 1+len(packed))
	out[0] = byte(v.K())
	copy(out[1:], packed)
	return out
}

func decodeVertex(b []byte) (kmer.Kmer, int, error) {
	if len(b) < 1 {
		return kmer.Kmer{}, 0, fmt.Errorf("%w: vertex header truncated", ErrColumnOutOfRange)
	}
	k := int(b[0])
	packedLen := (k + 3) / 4
	if len(b) < 1+packedLen {
		return kmer.Kmer{}, 0, fmt.Errorf("%w: vertex body truncated", ErrColumnOutOfRange)
	}
	bases := kmer.UnpackBases(b[1:1+packedLen], k)
	v, err := kmer.Encode(bases)
	if err != nil {
		return kmer.Kmer{}, 0, err
	}
	return v, 1 + packedLen, nil
}

// Encode serializes r for append to a D_j side file.
func (r DiagonalRecord) Encode() []byte {
	vb := encodeVertex(r.Vertex)
	var ob []byte
	if r.Other.IsPhi {
		ob = []byte{1, byte(r.Other.Side)}
	} else {
		ob = append([]byte{0, byte(r.Other.Side)}, encodeVertex(r.Other.Vertex)...)
	}
	buf := make([]byte, 1+4+len(vb)+4+4+len(ob))
	off := 0
	buf[off] = byte(r.EnterSide)
	off++
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(vb)))
	off += 4
	copy(buf[off:], vb)
	off += len(vb)
	binary.LittleEndian.PutUint32(buf[off:], uint32(r.Other.Weight))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(ob)))
	off += 4
	copy(buf[off:], ob)
	return buf
}

// DecodeDiagonalRecord is the inverse of DiagonalRecord.Encode.
func DecodeDiagonalRecord(b []byte) (DiagonalRecord, error) {
	if len(b) < 5 {
		return DiagonalRecord{}, fmt.Errorf("%w: record truncated", ErrColumnOutOfRange)
	}
	off := 0
	enterSide := edgematrix.Side(b[off])
	off++
	vbLen := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	if len(b) < off+vbLen+8 {
		return DiagonalRecord{}, fmt.Errorf("%w: record truncated", ErrColumnOutOfRange)
	}
	v, _, err := decodeVertex(b[off : off+vbLen])
	if err != nil {
		return DiagonalRecord{}, err
	}
	off += vbLen
	weight := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	obLen := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	if len(b) < off+obLen || obLen < 2 {
		return DiagonalRecord{}, fmt.Errorf("%w: record truncated", ErrColumnOutOfRange)
	}
	ob := b[off : off+obLen]
	isPhi := ob[0] == 1
	side := edgematrix.Side(ob[1])
	if isPhi {
		return DiagonalRecord{Vertex: v, EnterSide: enterSide, Other: OtherEnd{Side: side, IsPhi: true, Weight: weight}}, nil
	}
	other, _, err := decodeVertex(ob[2:])
	if err != nil {
		return DiagonalRecord{}, err
	}
	return DiagonalRecord{Vertex: v, EnterSide: enterSide, Other: OtherEnd{Vertex: other, Side: side, Weight: weight}}, nil
}
