package expander

import (
	"io"
	"os"
	"path/filepath"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/contractor"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
)

// Expander replays contractor's D_j side files in reverse column order
// to back-propagate PathInfo from surviving meta-vertices to every
// vertex that was eliminated along the way.
type Expander struct {
	workDir string
	p       int
}

// New returns an Expander that will read D_0..D_p from workDir, the
// directory contractor.New was given.
func New(workDir string, p int) *Expander {
	return &Expander{workDir: workDir, p: p}
}

// Expand takes the PathInfo already assigned to surviving meta-vertices
// (the caller's seed, computed before collation) and returns a map extended with every eliminated
// vertex's inherited PathInfo. Columns are replayed from P down to 0:
// contractor processed columns in ascending order, so a vertex
// eliminated at column j may point at a vertex only later eliminated at
// some j' > j — replaying in descending order guarantees j' has already
// contributed its result by the time column j is read.
func (e *Expander) Expand(seed map[kmer.Kmer]PathInfo) (map[kmer.Kmer]PathInfo, error) {
	result := make(map[kmer.Kmer]PathInfo, len(seed))
	for k, v := range seed {
		result[k] = v
	}

	for j := e.p; j >= 0; j-- {
		path := filepath.Join(e.workDir, "D_"+itoaLocal(j))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := e.replayColumn(path, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// replayColumn folds one column's D_j records into result, skipping a
// record whose far end has no PathInfo yet (it may belong to a vertex
// this column eliminated in its OTHER entering-side record, not yet
// folded in on this pass; a second pass over the same file resolves
// those once their sibling record has run).
func (e *Expander) replayColumn(path string, result map[kmer.Kmer]PathInfo) error {
	var records []contractor.DiagonalRecord
	reader, err := atlas.OpenReader(path)
	if err != nil {
		return err
	}
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			reader.Close()
			return err
		}
		rec, err := contractor.DecodeDiagonalRecord(raw)
		if err != nil {
			reader.Close()
			return err
		}
		records = append(records, rec)
	}
	reader.Close()

	pending := records
	for len(pending) > 0 {
		progressed := false
		var next []contractor.DiagonalRecord
		for _, rec := range pending {
			if rec.Other.IsPhi {
				continue // a chain ending at ϕ carries no PathInfo to inherit
			}
			far, ok := result[rec.Other.Vertex]
			if !ok {
				next = append(next, rec)
				continue
			}
			result[rec.Vertex] = propagate(far, rec)
			progressed = true
		}
		if !progressed {
			break // remaining records point outside this replay's reach; leave unresolved
		}
		pending = next
	}
	return nil
}

// propagate derives an eliminated vertex's PathInfo from the far end its
// chain resolved to: Rank moves by the chain's internal edge count
// (sign per entering side — Front means this vertex precedes the far
// end in tig order), and Orientation flips whenever the entering side
// and the far end's matching side disagree.
func propagate(far PathInfo, rec contractor.DiagonalRecord) PathInfo {
	offset := rec.Other.Weight
	if rec.EnterSide == edgematrix.Front {
		offset = -offset
	}
	flipped := rec.EnterSide != rec.Other.Side
	return PathInfo{
		UnitigID:    far.UnitigID,
		Rank:        far.Rank + offset,
		Orientation: far.Orientation != flipped,
	}
}

func itoaLocal(n int) string {
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
