package partition

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/config"
	"github.com/katalvlaran/dbgc/kmer"
	"github.com/katalvlaran/dbgc/seqio"
)

// AtlasLocator resolves a subgraph id to the Atlas that owns it and the
// graph-local id within that atlas, per spec.md section 3's
// atlas_id(g)/graph_id(g) split.
type AtlasLocator interface {
	AtlasFor(subgraph int) (a *atlas.Atlas, graphID int)
}

// Partitioner runs the reader/worker pipeline of spec.md section 4.1,
// turning Fragments from a FragmentSource into SuperKmerRecord writes
// against an AtlasLocator's atlases.
type Partitioner struct {
	cfg     *config.Config
	seed    uint64
	atlases AtlasLocator
}

// New returns a Partitioner bound to cfg and atlases. seed is the k-mer
// and minimizer hash seed shared with every other stage.
func New(cfg *config.Config, seed uint64, atlases AtlasLocator) *Partitioner {
	return &Partitioner{cfg: cfg, seed: seed, atlases: atlases}
}

// Run drains src to completion, per spec.md section 4.1's "Concurrency":
// a single reader goroutine feeds a bounded channel of fragments; a
// worker pool (sized cfg.Threads - cfg.ReaderThreads, at least 1) pops
// fragments, computes segments, and merges
// each resulting SuperKmerRecord into its target subgraph's atlas
// worker-local buffer before a final Merge. Reader errors
// (spec.md: "fatal") abort the whole group via errgroup's ctx
// cancellation.
func (p *Partitioner) Run(ctx context.Context, src seqio.FragmentSource) error {
	fragments := make(chan seqio.Fragment, p.cfg.ReaderThreads*4)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(fragments)
		for {
			frag, ok, err := src.Next(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			select {
			case fragments <- frag:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	workers := p.cfg.Threads - p.cfg.ReaderThreads
	if workers < 1 {
		workers = 1
	}
	buffers := make([]*worker, workers)
	for i := range buffers {
		buffers[i] = newWorker(p)
	}

	for i := 0; i < workers; i++ {
		w := buffers[i]
		g.Go(func() error {
			for {
				select {
				case frag, ok := <-fragments:
					if !ok {
						return w.flushAll()
					}
					if err := w.process(frag); err != nil {
						return err
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	return g.Wait()
}

// worker owns one WorkerBuffer per distinct atlas it has written to,
// created lazily, mirroring spec.md section 4.1's "worker-local buffer
// of the target subgraph's atlas." In colored mode it also tracks the
// current reader batch via BatchTracker, since colored output requires
// flushing (sorted by source id) at batch boundaries rather than only
// once a buffer reaches cfg.WorkerBufferBytes.
type worker struct {
	p       *Partitioner
	buffers map[*atlas.Atlas]*atlas.WorkerBuffer
	batch   BatchTracker
}

func newWorker(p *Partitioner) *worker {
	return &worker{p: p, buffers: make(map[*atlas.Atlas]*atlas.WorkerBuffer)}
}

func (w *worker) bufferFor(a *atlas.Atlas) *atlas.WorkerBuffer {
	wb, ok := w.buffers[a]
	if !ok {
		wb = atlas.NewWorkerBuffer()
		w.buffers[a] = wb
	}
	return wb
}

// process folds one fragment into super-k-mer records and buffers each,
// merging into its atlas once the worker's local buffer reaches
// cfg.WorkerBufferBytes (spec.md section 4.1).
func (w *worker) process(frag seqio.Fragment) error {
	cfg := w.p.cfg
	if !frag.Admissible(cfg.K) {
		return nil // "A fragment shorter than k+1 is silently skipped."
	}

	bases := make([]byte, len(frag.Letters))
	for i, l := range frag.Letters {
		bases[i] = symbolCodeFor(byte(l))
	}

	segs, err := Segments(bases, cfg.K, cfg.L, cfg.Graphs, w.p.seed)
	if err != nil {
		return err
	}

	for _, seg := range segs {
		packed, err := kmer.PackBases(asciiBases(bases[seg.Start : seg.Start+seg.Bases]))
		if err != nil {
			return err
		}
		rec := atlas.SuperKmerRecord{
			LDisc:    seg.LDisc,
			RDisc:    seg.RDisc,
			LJoined:  seg.LJoined,
			RJoined:  seg.RJoined,
			SourceID: int32(frag.SourceID),
			Bases:    seg.Bases,
			Packed:   packed,
		}
		a, graphID := w.p.atlases.AtlasFor(seg.GraphID)
		rec.GraphID = graphID

		wb := w.bufferFor(a)
		wb.Append(rec)
		if wb.SizeBytes() >= cfg.WorkerBufferBytes {
			if err := a.Merge(wb); err != nil {
				return err
			}
		}
	}

	if cfg.Colored {
		w.batch.Observe(int32(frag.SourceID), len(frag.Letters))
		if w.batch.Full(cfg.BytesPerBatch) {
			if err := w.flushBatch(); err != nil {
				return err
			}
		}
	}
	return nil
}

// flushBatch drains every buffer this worker currently holds through
// Atlas.FlushBatch (sort-by-source-id, then append), regardless of
// size, and resets the batch tracker. Called at a batch boundary in
// colored mode, and once more at end of input by flushAll.
func (w *worker) flushBatch() error {
	for a, wb := range w.buffers {
		if wb.Len() == 0 {
			continue
		}
		if err := a.FlushBatch(wb); err != nil {
			return err
		}
	}
	w.batch.Reset()
	return nil
}

// flushAll merges every remaining worker-local buffer, called once the
// fragment channel is drained. In colored mode the final partial batch
// still needs FlushBatch's sort-by-source-id, not a plain Merge.
func (w *worker) flushAll() error {
	if w.p.cfg.Colored {
		return w.flushBatch()
	}
	for a, wb := range w.buffers {
		if wb.Len() == 0 {
			continue
		}
		if err := a.Merge(wb); err != nil {
			return err
		}
	}
	return nil
}

func symbolCodeFor(c byte) byte {
	switch c {
	case 'C', 'c':
		return kmer.C
	case 'G', 'g':
		return kmer.G
	case 'T', 't':
		return kmer.T
	default:
		return kmer.A
	}
}

func asciiBases(codes []byte) []byte {
	out := make([]byte, len(codes))
	for i, c := range codes {
		out[i] = kmer.SymbolFor(c)
	}
	return out
}
