package partition

// BatchTracker records the source-id range and byte volume observed
// within one reader batch, grounded on the original implementation's
// Source_Hash.hpp batch bookkeeping: spec.md section 4.1 describes
// colored-mode flushing as "counting sort on source-id range
// [min_src, max_src] seen in that batch", which requires tracking that
// range as fragments stream through, not just sorting at flush time.
type BatchTracker struct {
	bytes          int64
	minSrc, maxSrc int32
	seen           bool
}

// Observe folds one fragment's source id and byte length into the
// current batch.
func (t *BatchTracker) Observe(sourceID int32, nBytes int) {
	t.bytes += int64(nBytes)
	if !t.seen {
		t.minSrc, t.maxSrc = sourceID, sourceID
		t.seen = true
		return
	}
	if sourceID < t.minSrc {
		t.minSrc = sourceID
	}
	if sourceID > t.maxSrc {
		t.maxSrc = sourceID
	}
}

// Range reports the batch's observed [min_src, max_src] span. ok is
// false if Observe was never called since the last Reset.
func (t *BatchTracker) Range() (min, max int32, ok bool) {
	return t.minSrc, t.maxSrc, t.seen
}

// Full reports whether the batch has consumed at least limit input
// bytes and is due to be flushed.
func (t *BatchTracker) Full(limit int64) bool {
	return t.bytes >= limit
}

// Reset clears the tracker for the next batch.
func (t *BatchTracker) Reset() {
	*t = BatchTracker{}
}
