package color

// Engine runs one worker's side of spec.md section 4.7's protocol: given
// a color-shift vertex's raw (already non-decreasing) source-id list, it
// resolves the Coordinate for that color-set, materialising it through
// repo at most once process-wide.
type Engine struct {
	table    *Table
	repo     *Repository
	workerID uint8
}

// NewEngine returns an Engine for workerID, sharing table with every
// other worker and writing new materialisations through repo.
func NewEngine(table *Table, repo *Repository, workerID uint8) *Engine {
	return &Engine{table: table, repo: repo, workerID: workerID}
}

// Resolve runs steps 1-3 of spec.md section 4.7's protocol for one
// vertex's raw source-id list, returning the color-set hash and its
// Coordinate.
func (e *Engine) Resolve(rawSourceIDs []int32) (hash uint64, coord Coordinate, err error) {
	ids := SortedUnique(rawSourceIDs)
	h := Hash(ids)

	coord, owned, err := e.table.ClaimOrWait(h, e.workerID)
	if err != nil {
		return 0, Coordinate{}, err
	}
	if !owned {
		return h, coord, nil
	}

	coord, err = e.repo.Materialize(e.workerID, ids)
	if err != nil {
		return 0, Coordinate{}, err
	}
	e.table.Finalize(h, coord)
	return h, coord, nil
}
