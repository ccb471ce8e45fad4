package atlas

import (
	"encoding/binary"
	"fmt"
)

// flag bit positions within SuperKmerRecord's packed flag byte.
const (
	flagLDisc = 1 << iota
	flagRDisc
	flagLJoined
	flagRJoined
)

// SuperKmerRecord is one super-k-mer as emitted by the Partitioner
// (spec.md section 3 "Super-(k-1)-mer" / "Super k-mer"): a run of
// packed bases plus the boundary/context attributes needed to
// reconstruct edges and discontinuities during subgraph loading.
type SuperKmerRecord struct {
	GraphID  int // graph_id(g) within the owning Atlas, see SubgraphOf/GraphID
	LDisc    bool
	RDisc    bool
	LJoined  bool
	RJoined  bool
	SourceID int32 // source id of the originating fragment, colored or not
	Bases    int   // number of bases packed
	Packed   []byte
}

// Encode serializes rec into a self-contained byte record suitable for
// Bucket.Append. Layout: graphID(4) flags(1) sourceID(4) bases(4)
// len(packed)(4) packed bytes.
func (rec SuperKmerRecord) Encode() []byte {
	buf := make([]byte, 4+1+4+4+4+len(rec.Packed))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], uint32(rec.GraphID))
	off += 4

	var flags byte
	if rec.LDisc {
		flags |= flagLDisc
	}
	if rec.RDisc {
		flags |= flagRDisc
	}
	if rec.LJoined {
		flags |= flagLJoined
	}
	if rec.RJoined {
		flags |= flagRJoined
	}
	buf[off] = flags
	off++

	binary.LittleEndian.PutUint32(buf[off:], uint32(rec.SourceID))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(rec.Bases))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(rec.Packed)))
	off += 4
	copy(buf[off:], rec.Packed)

	return buf
}

// DecodeSuperKmerRecord is the inverse of Encode.
func DecodeSuperKmerRecord(b []byte) (SuperKmerRecord, error) {
	if len(b) < 17 {
		return SuperKmerRecord{}, fmt.Errorf("%w: record too short (%d bytes)", ErrTruncatedRecord, len(b))
	}
	off := 0
	graphID := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	flags := b[off]
	off++
	sourceID := int32(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	bases := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	packedLen := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	if len(b)-off != packedLen {
		return SuperKmerRecord{}, fmt.Errorf("%w: packed length mismatch", ErrTruncatedRecord)
	}
	packed := make([]byte, packedLen)
	copy(packed, b[off:])

	return SuperKmerRecord{
		GraphID:  graphID,
		LDisc:    flags&flagLDisc != 0,
		RDisc:    flags&flagRDisc != 0,
		LJoined:  flags&flagLJoined != 0,
		RJoined:  flags&flagRJoined != 0,
		SourceID: sourceID,
		Bases:    bases,
		Packed:   packed,
	}, nil
}
