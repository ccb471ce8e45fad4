package contractor

import (
	"context"
	"io"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/edgematrix"
)

// Contractor drives spec.md section 4.4's column-by-column elimination
// over an edgematrix.Matrix, persisting one D_j side file per column
// under workDir for expander to replay later.
type Contractor struct {
	matrix  *edgematrix.Matrix
	seed    uint64
	workDir string
}

// New returns a Contractor bound to matrix, using seed for re-deriving a
// contracted meta-vertex's partition and persisting D_j files under
// workDir.
func New(matrix *edgematrix.Matrix, seed uint64, workDir string) *Contractor {
	return &Contractor{matrix: matrix, seed: seed, workDir: workDir}
}

// Run contracts every column 0..P in ascending order. Columns are
// processed strictly in order (a later column's diagonal block can
// contain meta-edges created by an earlier column's sweep), but the
// non-diagonal sweep within one column fans its rows out over an
// errgroup, mirroring teacher flow/dinic.go's per-phase worker fan-out.
func (c *Contractor) Run(ctx context.Context) error {
	for j := 0; j <= c.matrix.P(); j++ {
		if err := c.ContractColumn(ctx, j); err != nil {
			return err
		}
	}
	return nil
}

// ContractColumn eliminates every vertex living in column j's diagonal
// cell: it builds the column's OtherEnd chain map from the diagonal
// block's edges (diagonal contraction), persists that map as column j's
// D_j side file, then rewrites every off-diagonal edge touching an
// eliminated vertex to point at the far end of its chain (the
// non-diagonal sweep), appending the rewritten meta-edge into the cell
// its new endpoints select.
func (c *Contractor) ContractColumn(ctx context.Context, j int) error {
	if j < 0 || j > c.matrix.P() {
		return ErrColumnOutOfRange
	}

	chains, err := c.diagonalContraction(j)
	if err != nil {
		return err
	}
	if chains.len() == 0 {
		return nil
	}

	if err := c.persistColumn(j, chains); err != nil {
		return err
	}

	return c.nonDiagonalSweep(ctx, j, chains)
}

// diagonalContraction reads cell (j,j) and records every edge's two
// raw incidences by (vertex, side), without yet resolving chains: a
// vertex touched on both its slots by diagonal edges is fully internal
// and will later be walked to its eventual far end by columnMap.resolve
// (spec.md section 4.4's "a diagonal vertex of degree two is removed,
// its two edges fused into one" generalized to chains longer than one
// internal vertex).
func (c *Contractor) diagonalContraction(j int) (*columnMap, error) {
	chains := newColumnMap()

	diag, err := c.matrix.Diagonal(j)
	if err != nil {
		return nil, err
	}
	reader, err := diag.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		e, err := edgematrix.DecodeEdge(raw)
		if err != nil {
			return nil, err
		}
		if !e.X.IsPhi && !e.Y.IsPhi && e.X.Vertex.Equal(e.Y.Vertex) && e.X.Side == e.Y.Side {
			continue // self-loop: cannot be chained, drop per ErrSelfLoop semantics
		}
		if !e.X.IsPhi {
			chains.record(vertexSide{e.X.Vertex, e.X.Side}, vertexSide{e.Y.Vertex, e.Y.Side}, e.Y.IsPhi, e.Weight)
		}
		if !e.Y.IsPhi {
			chains.record(vertexSide{e.Y.Vertex, e.Y.Side}, vertexSide{e.X.Vertex, e.X.Side}, e.X.IsPhi, e.Weight)
		}
	}
	return chains, nil
}

// persistColumn resolves every internal vertex's two entering-side
// chains and writes the results to workDir/D_<j> so expander can replay
// the contraction later when back-propagating PathInfo.
func (c *Contractor) persistColumn(j int, chains *columnMap) error {
	b, err := atlas.OpenBucket(filepath.Join(c.workDir, columnFileName(j)))
	if err != nil {
		return err
	}
	defer b.Close()

	for _, v := range chains.internalVertices() {
		for _, side := range []edgematrix.Side{edgematrix.Front, edgematrix.Back} {
			oe := chains.resolve(v, side)
			rec := DiagonalRecord{Vertex: v, EnterSide: side, Other: oe}
			if _, err := b.Append(rec.Encode()); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

func columnFileName(j int) string {
	return "D_" + itoa(j)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// nonDiagonalSweep rewrites every edge in column j's row (cells (j, j+1
// .. P)) and column (cells (0 .. j-1, j)) whose endpoint lands on an
// eliminated vertex, redirecting it to that vertex's OtherEnd and
// re-appending the rewritten edge into the cell its new endpoints'
// partitions select. Rows fan out over an errgroup since each row's
// cell is independent storage.
func (c *Contractor) nonDiagonalSweep(ctx context.Context, j int, chains *columnMap) error {
	g, _ := errgroup.WithContext(ctx)

	row, err := c.matrix.Row(j)
	if err != nil {
		return err
	}
	for _, cell := range row[1:] { // row[0] is the diagonal cell (j,j), already handled
		cell := cell
		g.Go(func() error { return c.sweepCell(j, cell, chains) })
	}

	colCells, err := c.matrix.Column(j)
	if err != nil {
		return err
	}
	for _, cell := range colCells[:len(colCells)-1] { // last entry is the diagonal cell (j,j)
		cell := cell
		g.Go(func() error { return c.sweepCell(j, cell, chains) })
	}

	return g.Wait()
}

// sweepCell rewrites every edge in cell whose endpoint sits at an
// eliminated vertex and re-appends the contracted edge into its new
// home cell.
func (c *Contractor) sweepCell(j int, cell *atlas.Bucket, chains *columnMap) error {
	reader, err := cell.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	var rewritten []edgematrix.Edge
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		e, err := edgematrix.DecodeEdge(raw)
		if err != nil {
			return err
		}
		nx, wx, changed := c.resolve(e.X, chains)
		ny, wy, changed2 := c.resolve(e.Y, chains)
		if !changed && !changed2 {
			continue // untouched by this column's elimination, leave in place
		}
		rewritten = append(rewritten, edgematrix.Edge{X: nx, Y: ny, Weight: e.Weight + wx + wy, Bucket: e.Bucket, BucketIndex: e.BucketIndex})
	}

	for _, e := range rewritten {
		var px, py int
		if !e.X.IsPhi {
			px = edgematrix.PartitionOf(e.X.Vertex, c.matrix.P(), c.seed)
		}
		if !e.Y.IsPhi {
			py = edgematrix.PartitionOf(e.Y.Vertex, c.matrix.P(), c.seed)
		}
		row, col := edgematrix.CellFor(px, py)
		if _, err := c.matrix.Append(row, col, e); err != nil {
			return err
		}
	}
	return nil
}

// resolve follows endpoint ep through chains: if ep's vertex is fully
// internal to this column, it returns the far end its chain walks to
// (possibly crossing several internal vertices) together with the
// chain's internal weight, which sweepCell adds to the rewritten edge.
func (c *Contractor) resolve(ep edgematrix.Endpoint, chains *columnMap) (edgematrix.Endpoint, int, bool) {
	if ep.IsPhi || !chains.isInternal(ep.Vertex) {
		return ep, 0, false
	}
	oe := chains.resolve(ep.Vertex, ep.Side)
	return edgematrix.Endpoint{Vertex: oe.Vertex, Side: oe.Side, IsPhi: oe.IsPhi}, oe.Weight, true
}
