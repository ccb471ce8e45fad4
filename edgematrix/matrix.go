package edgematrix

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/dbgc/atlas"
)

// Matrix is the upper-triangular P+1 x P+1 collection of edge cells
// (spec.md section 4.3), stored flat row-major like teacher
// matrix/dense.go's Dense type, but holding *atlas.Bucket cells instead
// of float64s. Column/row 0 is the ϕ column.
type Matrix struct {
	p     int // number of vertex partitions
	cells []*atlas.Bucket
}

// Open creates the P+1 x P+1 triangle of cell buckets under dir,
// following spec.md section 6's "E_<i>/<j>" layout. p must be a power
// of two.
func Open(dir string, p int) (*Matrix, error) {
	if p <= 0 || p&(p-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	m := &Matrix{p: p, cells: make([]*atlas.Bucket, (p+1)*(p+1))}
	for i := 0; i <= p; i++ {
		rowDir := filepath.Join(dir, fmt.Sprintf("E_%d", i))
		if err := os.MkdirAll(rowDir, 0o755); err != nil {
			m.closeOpened()
			return nil, err
		}
		for j := i; j <= p; j++ {
			b, err := atlas.OpenBucket(filepath.Join(rowDir, fmt.Sprintf("%d", j)))
			if err != nil {
				m.closeOpened()
				return nil, err
			}
			m.cells[m.indexOf(i, j)] = b
		}
	}
	return m, nil
}

func (m *Matrix) closeOpened() {
	for _, b := range m.cells {
		if b != nil {
			b.Close()
		}
	}
}

// indexOf mirrors teacher matrix/dense.go's bounds-checked flat-array
// addressing, specialized to the upper triangle row <= col.
func (m *Matrix) indexOf(row, col int) int {
	return row*(m.p+1) + col
}

// Cell returns the bucket for (row,col), 0 <= row <= col <= P.
func (m *Matrix) Cell(row, col int) (*atlas.Bucket, error) {
	if row < 0 || col > m.p || row > col {
		return nil, ErrCellRange
	}
	return m.cells[m.indexOf(row, col)], nil
}

// Append writes e into cell (row, col) as given, 0 <= row <= col <= P.
// Callers pick the cell from the endpoints' partitions with CellFor
// (spec.md section 4.3: "entries live only where partition(x) <=
// partition(y)"); ϕ endpoints live in column/row 0.
func (m *Matrix) Append(row, col int, e Edge) (int64, error) {
	cell, err := m.Cell(row, col)
	if err != nil {
		return 0, err
	}
	return cell.Append(e.Encode())
}

// Column returns the cells (0..col, col) forming column col, in
// ascending row order.
func (m *Matrix) Column(col int) ([]*atlas.Bucket, error) {
	if col < 0 || col > m.p {
		return nil, ErrCellRange
	}
	out := make([]*atlas.Bucket, 0, col+1)
	for row := 0; row <= col; row++ {
		out = append(out, m.cells[m.indexOf(row, col)])
	}
	return out, nil
}

// Row returns the cells (row, row..P) forming row row, in ascending
// column order.
func (m *Matrix) Row(row int) ([]*atlas.Bucket, error) {
	if row < 0 || row > m.p {
		return nil, ErrCellRange
	}
	out := make([]*atlas.Bucket, 0, m.p-row+1)
	for col := row; col <= m.p; col++ {
		out = append(out, m.cells[m.indexOf(row, col)])
	}
	return out, nil
}

// Diagonal returns column j's diagonal block, cell (j,j).
func (m *Matrix) Diagonal(j int) (*atlas.Bucket, error) {
	return m.Cell(j, j)
}

// Size returns the number of records appended to cell (row,col) so far.
func (m *Matrix) Size(row, col int) (int64, error) {
	cell, err := m.Cell(row, col)
	if err != nil {
		return 0, err
	}
	return cell.Count(), nil
}

// Remove deletes cell (row,col)'s backing storage.
func (m *Matrix) Remove(row, col int) error {
	cell, err := m.Cell(row, col)
	if err != nil {
		return err
	}
	return cell.Remove()
}

// Close closes every cell bucket.
func (m *Matrix) Close() error {
	var firstErr error
	for _, b := range m.cells {
		if b == nil {
			continue
		}
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// P returns the partition count.
func (m *Matrix) P() int { return m.p }
