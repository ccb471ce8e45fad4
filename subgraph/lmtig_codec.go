package subgraph

import "encoding/binary"

// Encode serializes l for append to a per-subgraph lm-tig bucket, the
// on-disk storage collate later recovers records from via (bucket,
// bucket_idx).
func (l LmTig) Encode() []byte {
	seq := []byte(l.Sequence)
	buf := make([]byte, 4+len(seq)+1+1+1+1+1)
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(seq)))
	off += 4
	copy(buf[off:], seq)
	off += len(seq)
	buf[off] = byte(l.LeftTerm)
	off++
	buf[off] = byte(l.RightTerm)
	off++
	buf[off] = boolByte(l.LeftDisc)
	off++
	buf[off] = boolByte(l.RightDisc)
	off++
	buf[off] = boolByte(l.Cycle)
	return buf
}

// DecodeLmTig is the inverse of LmTig.Encode.
func DecodeLmTig(b []byte) (LmTig, error) {
	if len(b) < 4 {
		return LmTig{}, ErrTruncatedRecord
	}
	n := int(binary.LittleEndian.Uint32(b))
	off := 4
	if len(b) < off+n+5 {
		return LmTig{}, ErrTruncatedRecord
	}
	seq := string(b[off : off+n])
	off += n
	return LmTig{
		Sequence:  seq,
		LeftTerm:  Termination(b[off]),
		RightTerm: Termination(b[off+1]),
		LeftDisc:  b[off+2] != 0,
		RightDisc: b[off+3] != 0,
		Cycle:     b[off+4] != 0,
	}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
