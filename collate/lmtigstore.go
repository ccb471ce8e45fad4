package collate

import (
	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/subgraph"
)

// BucketLmTigStore persists non-trivial lm-tigs to a subgraph's on-disk
// bucket, implementing subgraph.LmTigStore. The returned index is the
// record's 0-based position within the bucket, matching the (bucket,
// bucket_idx) addressing discontinuity edges carry.
type BucketLmTigStore struct {
	bucket *atlas.Bucket
	next   int
}

// NewBucketLmTigStore wraps bucket, which must be empty (a fresh
// per-subgraph lm-tig bucket) so index 0 lines up with the bucket's
// first record.
func NewBucketLmTigStore(bucket *atlas.Bucket) *BucketLmTigStore {
	return &BucketLmTigStore{bucket: bucket}
}

// StoreLmTig appends tig and returns its index.
func (s *BucketLmTigStore) StoreLmTig(tig subgraph.LmTig) (int, error) {
	if _, err := s.bucket.Append(tig.Encode()); err != nil {
		return 0, err
	}
	index := s.next
	s.next++
	return index, nil
}
