package pipeline

import (
	"sync/atomic"

	"github.com/katalvlaran/dbgc/collate"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/subgraph"
)

// trivialUnitigSink implements subgraph.UnitigSink, writing every
// trivial maximal unitig straight to the shared output buffer under a
// process-wide monotonically increasing id, shared across every
// subgraph's Engine.Run call. Trivial ids count up from 0; chainIDOffset
// keeps them clear of the collated chain ids assignSeedPathInfo hands
// out later.
type trivialUnitigSink struct {
	buf  *collate.WorkerBuffer
	next int64
}

func newTrivialUnitigSink(buf *collate.WorkerBuffer) *trivialUnitigSink {
	return &trivialUnitigSink{buf: buf}
}

// WriteUnitig implements subgraph.UnitigSink.
func (s *trivialUnitigSink) WriteUnitig(tig subgraph.LmTig) error {
	id := atomic.AddInt64(&s.next, 1) - 1
	return s.buf.WriteRecord(int(id), tig.Sequence)
}

// matrixEdgeSink implements subgraph.EdgeSink over a shared
// edgematrix.Matrix, letting every subgraph's Engine.Run append
// discontinuity edges concurrently (each cell append is itself
// serialized by its underlying atlas.Bucket).
type matrixEdgeSink struct {
	matrix *edgematrix.Matrix
}

// AppendEdge implements subgraph.EdgeSink.
func (s *matrixEdgeSink) AppendEdge(row, col int, e edgematrix.Edge) error {
	_, err := s.matrix.Append(row, col, e)
	return err
}
