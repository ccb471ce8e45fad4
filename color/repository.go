package color

import (
	"encoding/binary"

	"github.com/katalvlaran/dbgc/atlas"
)

// Repository is one worker's append-only color-set store (spec.md
// section 4.7's "per-worker color repository"), backed by the same
// bucket primitive as everything else this module persists to disk.
type Repository struct {
	bucket *atlas.Bucket
	next   uint32
}

// NewRepository wraps bucket, which must be empty so index 0 lines up
// with the bucket's first record.
func NewRepository(bucket *atlas.Bucket) *Repository {
	return &Repository{bucket: bucket}
}

// Materialize appends sourceIDs (already sorted, deduplicated) and
// returns the Coordinate a caller should publish via Table.Finalize.
func (r *Repository) Materialize(workerID uint8, sourceIDs []int32) (Coordinate, error) {
	buf := make([]byte, 4+4*len(sourceIDs))
	binary.LittleEndian.PutUint32(buf, uint32(len(sourceIDs)))
	for i, id := range sourceIDs {
		binary.LittleEndian.PutUint32(buf[4+4*i:], uint32(id))
	}
	if _, err := r.bucket.Append(buf); err != nil {
		return Coordinate{}, err
	}
	index := r.next
	r.next++
	return Coordinate{WorkerID: workerID, BucketIndex: index}, nil
}

// ReadSourceIDs decodes one Materialize record.
func ReadSourceIDs(raw []byte) []int32 {
	if len(raw) < 4 {
		return nil
	}
	n := binary.LittleEndian.Uint32(raw)
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[4+4*i:]))
	}
	return out
}
