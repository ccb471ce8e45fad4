package atlas

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// WorkerBuffer accumulates SuperKmerRecords for one worker goroutine
// before it merges them into its target Atlas's shared buffer
// (spec.md section 4.1 "Concurrency": "a worker-local buffer of the
// target subgraph's atlas"). Not safe for concurrent use; each worker
// owns one per atlas it writes to.
type WorkerBuffer struct {
	records   []SuperKmerRecord
	sizeBytes int
}

// NewWorkerBuffer returns an empty WorkerBuffer.
func NewWorkerBuffer() *WorkerBuffer {
	return &WorkerBuffer{}
}

// Append adds rec to the buffer.
func (w *WorkerBuffer) Append(rec SuperKmerRecord) {
	w.records = append(w.records, rec)
	w.sizeBytes += len(rec.Packed) + 17
}

// Len reports the number of buffered records.
func (w *WorkerBuffer) Len() int { return len(w.records) }

// SizeBytes reports the approximate encoded size of the buffer.
func (w *WorkerBuffer) SizeBytes() int { return w.sizeBytes }

// Reset empties the buffer for reuse.
func (w *WorkerBuffer) Reset() {
	w.records = w.records[:0]
	w.sizeBytes = 0
}

// sortBySourceID performs the colored-mode counting sort described in
// spec.md section 4.1: "each atlas collates all pending super-k-mers by
// source-id ... (counting sort on source-id range [min_src, max_src]
// seen in that batch)". It runs in O(n + range) over the batch's own
// [min_src, max_src] span rather than comparison-sorting, and is
// stable so records sharing a source id keep their relative arrival
// order.
func (w *WorkerBuffer) sortBySourceID() {
	n := len(w.records)
	if n < 2 {
		return
	}

	min, max := w.records[0].SourceID, w.records[0].SourceID
	for _, rec := range w.records[1:] {
		if rec.SourceID < min {
			min = rec.SourceID
		}
		if rec.SourceID > max {
			max = rec.SourceID
		}
	}

	span := int(max-min) + 1
	counts := make([]int, span+1)
	for _, rec := range w.records {
		counts[rec.SourceID-min]++
	}
	for i := 1; i <= span; i++ {
		counts[i] += counts[i-1]
	}
	// counts[s] is now the number of records with source id <= min+s;
	// walking the batch in reverse and placing each record just before
	// the next free slot for its id keeps equal-id records in their
	// original relative order (stable).
	sorted := make([]SuperKmerRecord, n)
	for i := n - 1; i >= 0; i-- {
		rec := w.records[i]
		slot := rec.SourceID - min
		counts[slot]--
		sorted[counts[slot]] = rec
	}
	copy(w.records, sorted)
}

// Atlas groups GraphsPerAtlas subgraphs behind one shared in-memory
// buffer and a spare flush buffer, demultiplexing into per-subgraph
// Bucket shards on flush (spec.md sections 3 and 4.1).
type Atlas struct {
	id             int
	graphsPerAtlas int
	capacityBytes  int
	colored        bool

	chunkMu sync.Mutex // serializes merges and guards `shared`
	flushMu sync.Mutex // serializes the shared/flush swap itself

	shared *WorkerBuffer
	flush  *WorkerBuffer

	shards []*Bucket // indexed by graph_id(g), length graphsPerAtlas
}

// Open creates (or truncates) an Atlas's per-subgraph shard files under
// dir/atlas_<id>/G_<graphID>, per spec.md section 6 "Persisted state
// layout".
func Open(dir string, id, graphsPerAtlas, capacityBytes int, colored bool) (*Atlas, error) {
	if !isPowerOfTwo(graphsPerAtlas) {
		return nil, ErrNotPowerOfTwo
	}
	atlasDir := filepath.Join(dir, fmt.Sprintf("atlas_%d", id))
	if err := os.MkdirAll(atlasDir, 0o755); err != nil {
		return nil, err
	}

	shards := make([]*Bucket, graphsPerAtlas)
	for g := 0; g < graphsPerAtlas; g++ {
		b, err := OpenBucket(filepath.Join(atlasDir, fmt.Sprintf("G_%d", g)))
		if err != nil {
			for _, opened := range shards[:g] {
				opened.Close()
			}
			return nil, err
		}
		shards[g] = b
	}

	return &Atlas{
		id:             id,
		graphsPerAtlas: graphsPerAtlas,
		capacityBytes:  capacityBytes,
		colored:        colored,
		shared:         NewWorkerBuffer(),
		flush:          NewWorkerBuffer(),
		shards:         shards,
	}, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Shard returns the Bucket for graphID within this atlas.
func (a *Atlas) Shard(graphID int) (*Bucket, error) {
	if graphID < 0 || graphID >= a.graphsPerAtlas {
		return nil, ErrSubgraphRange
	}
	return a.shards[graphID], nil
}

// Merge folds wb's records into the atlas's shared buffer, swapping in
// the spare flush buffer and writing the full one to per-subgraph
// shards whenever the shared buffer reaches capacity. wb is reset on
// return in all cases.
//
// The two-mutex protocol matches spec.md section 5 "Shared resources":
// "two mutexes (chunk-lock and flush-lock) enforce: at most one swap in
// flight; new writers queue on chunk-lock only for the swap itself."
func (a *Atlas) Merge(wb *WorkerBuffer) error {
	a.chunkMu.Lock()
	a.shared.records = append(a.shared.records, wb.records...)
	a.shared.sizeBytes += wb.sizeBytes
	wb.Reset()

	if a.shared.sizeBytes < a.capacityBytes {
		a.chunkMu.Unlock()
		return nil
	}

	a.flushMu.Lock()
	toFlush := a.shared
	a.shared = a.flush
	a.shared.Reset()
	a.flush = toFlush
	a.chunkMu.Unlock()
	defer a.flushMu.Unlock()

	return a.flushBuffer(toFlush)
}

// FlushBatch implements the colored-mode per-batch protocol (spec.md
// section 4.1): after each reader batch, the caller drains every
// worker's local buffer into wb, then calls FlushBatch to sort by
// source id and append the sorted run, regardless of whether the
// shared-buffer capacity has been reached. This keeps source ids
// monotone non-decreasing within a bucket across batches.
func (a *Atlas) FlushBatch(wb *WorkerBuffer) error {
	wb.sortBySourceID()
	return a.flushBuffer(wb)
}

func (a *Atlas) flushBuffer(wb *WorkerBuffer) error {
	for _, rec := range wb.records {
		shard, err := a.Shard(rec.GraphID)
		if err != nil {
			return err
		}
		if _, err := shard.Append(rec.Encode()); err != nil {
			return err
		}
	}
	wb.Reset()
	return nil
}

// Drain forces a final flush of the shared buffer, used once the
// Partitioner has no more input. Callers must not call Merge
// concurrently with Drain.
func (a *Atlas) Drain() error {
	a.chunkMu.Lock()
	toFlush := a.shared
	a.shared = NewWorkerBuffer()
	a.chunkMu.Unlock()

	if a.colored {
		return a.FlushBatch(toFlush)
	}
	return a.flushBuffer(toFlush)
}

// Close flushes and closes every shard Bucket.
func (a *Atlas) Close() error {
	var firstErr error
	for _, b := range a.shards {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
