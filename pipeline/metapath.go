package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/contractor"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/expander"
	"github.com/katalvlaran/dbgc/kmer"
)

// vertexSide names one slot of a surviving discontinuity-graph vertex,
// the same granularity contractor's columnMap resolves chains at.
type vertexSide struct {
	v kmer.Kmer
	s edgematrix.Side
}

// tigKey identifies one lm-tig by where subgraph.Engine stored it.
type tigKey struct {
	bucket, index int
}

// edgeTarget names the vertexSide at the far end of one surviving tig
// from a vertexSide, and which lm-tig that tig is. Carrying the tigKey
// alongside the adjacency lets assignSeedPathInfo assign each tig its
// own rank directly as the walk crosses it, instead of inferring a
// tig's rank after the fact from a shared endpoint vertex's single
// rank — the latter is ambiguous exactly when two different tigs meet
// at the same vertex via its two different Sides (a vertex ending one
// lm-tig and starting the next), which collate.CollateBucket needs
// resolved into two distinct, correctly ordered ranks, not one shared
// rank.
type edgeTarget struct {
	to  vertexSide
	tig tigKey
}

// finalGraph is the contracted discontinuity graph read back from a
// edgematrix.Matrix once contractor.Run has finished: an adjacency map
// between surviving vertex slots carrying which tig each edge is,
// which slots border ϕ (a chain end) and via which tig, and a
// fallback single representative vertex per tig for the rare case a
// walk never reaches either of a tig's endpoints directly.
type finalGraph struct {
	adj       map[vertexSide]edgeTarget
	phiTig    map[vertexSide]tigKey
	tigVertex map[tigKey]kmer.Kmer
}

// eliminatedSet scans every D_j side file contractor.Run wrote under
// workDir and returns the vertices fused away during contraction. A
// diagonal cell's raw edge records are never rewritten in place
// (contractor only reads them to build that column's chain map), so a
// final matrix scan must know which endpoints are stale leftovers from
// an already-fused vertex rather than live structure.
func eliminatedSet(workDir string, p int) (map[kmer.Kmer]bool, error) {
	out := make(map[kmer.Kmer]bool)
	for j := 0; j <= p; j++ {
		path := filepath.Join(workDir, "D_"+itoa(j))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := func() error {
			reader, err := atlas.OpenReader(path)
			if err != nil {
				return err
			}
			defer reader.Close()
			for {
				raw, err := reader.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				rec, err := contractor.DecodeDiagonalRecord(raw)
				if err != nil {
					return err
				}
				out[rec.Vertex] = true
			}
		}(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// harvestFinalGraph reads every cell of the fully-contracted matrix m
// and builds the surviving meta-graph plus a lookup from each lm-tig's
// (bucket, index) to the vertex representing it. eliminated is accepted
// for callers that want it (e.g. for diagnostics) but is not used to
// drop edges here: a diagonal cell's raw records are never rewritten by
// contractor.Run, so they remain the only record of a vertex used as a
// discontinuity junction between two lm-tigs, whether or not that
// vertex was also found internal while contracting its own column.
func harvestFinalGraph(m *edgematrix.Matrix, eliminated map[kmer.Kmer]bool) (*finalGraph, error) {
	fg := &finalGraph{
		adj:       make(map[vertexSide]edgeTarget),
		phiTig:    make(map[vertexSide]tigKey),
		tigVertex: make(map[tigKey]kmer.Kmer),
	}

	p := m.P()
	for row := 0; row <= p; row++ {
		for col := row; col <= p; col++ {
			cell, err := m.Cell(row, col)
			if err != nil {
				return nil, err
			}
			if err := fg.scanCell(cell); err != nil {
				return nil, err
			}
		}
	}
	return fg, nil
}

func (fg *finalGraph) scanCell(cell *atlas.Bucket) error {
	reader, err := cell.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		raw, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		e, err := edgematrix.DecodeEdge(raw)
		if err != nil {
			return err
		}

		tk := tigKey{e.Bucket, e.BucketIndex}
		switch {
		case e.X.IsPhi && e.Y.IsPhi:
			// a bare ϕ-ϕ edge names no vertex; nothing to seed.
		case e.X.IsPhi:
			vs := vertexSide{e.Y.Vertex, e.Y.Side}
			fg.phiTig[vs] = tk
			fg.recordTig(tk, e.Y.Vertex)
		case e.Y.IsPhi:
			vs := vertexSide{e.X.Vertex, e.X.Side}
			fg.phiTig[vs] = tk
			fg.recordTig(tk, e.X.Vertex)
		default:
			fx := vertexSide{e.X.Vertex, e.X.Side}
			fy := vertexSide{e.Y.Vertex, e.Y.Side}
			fg.adj[fx] = edgeTarget{fy, tk}
			fg.adj[fy] = edgeTarget{fx, tk}
			fg.recordTig(tk, e.X.Vertex)
		}
	}
}

// recordTig keeps the first vertex seen for a tig as a fallback
// representative, used only when assignSeedPathInfo's walk never
// reaches either of the tig's own endpoints directly.
func (fg *finalGraph) recordTig(tk tigKey, v kmer.Kmer) {
	if _, ok := fg.tigVertex[tk]; !ok {
		fg.tigVertex[tk] = v
	}
}

// assignSeedPathInfo walks fg's surviving vertices, one connected
// component at a time, assigning PathInfo by a simple linked-list walk:
// a vertex anchored to ϕ on one side starts a chain at Rank 0 moving
// away from that side; an isolated cycle (no ϕ anchor reachable) starts
// arbitrarily at one of its own vertices. result is the vertex-keyed
// seed expander.Expand back-propagates from to cover every vertex
// contraction eliminated; tigInfo is the same walk's PathInfo assigned
// directly to each tig it crosses, by tigKey rather than by endpoint
// vertex — the rank a tig gets is the rank its far endpoint receives
// (or, for a tig anchored to ϕ, the one rank its single real endpoint
// has), so two different tigs sharing one vertex via that vertex's two
// Sides resolve to their own correctly ordered ranks instead of both
// reading the shared vertex's single rank.
func assignSeedPathInfo(fg *finalGraph, startID int) (result map[kmer.Kmer]expander.PathInfo, tigInfo map[tigKey]expander.PathInfo, nextID int) {
	visited := make(map[kmer.Kmer]bool)
	result = make(map[kmer.Kmer]expander.PathInfo)
	tigInfo = make(map[tigKey]expander.PathInfo)
	unitigID := startID

	walk := func(start vertexSide) {
		rank := 0
		orientation := true
		if tk, ok := fg.phiTig[start]; ok {
			tigInfo[tk] = expander.PathInfo{UnitigID: unitigID, Rank: rank, Orientation: orientation}
		}
		cur := start
		for {
			if visited[cur.v] {
				return
			}
			visited[cur.v] = true
			result[cur.v] = expander.PathInfo{UnitigID: unitigID, Rank: rank, Orientation: orientation}
			exitSide := flipSide(cur.s)
			edge, ok := fg.adj[vertexSide{cur.v, exitSide}]
			if !ok {
				return // chain end: ϕ on the far side, or a true dead end
			}
			rank++
			tigInfo[edge.tig] = expander.PathInfo{UnitigID: unitigID, Rank: rank, Orientation: orientation}
			cur = edge.to
		}
	}

	var phiAnchors []vertexSide
	for vs := range fg.phiTig {
		phiAnchors = append(phiAnchors, vs)
	}
	sortVertexSides(phiAnchors)
	for _, anchor := range phiAnchors {
		if visited[anchor.v] {
			continue
		}
		walk(anchor)
		unitigID++
	}

	var leftover []vertexSide
	for vs := range fg.adj {
		leftover = append(leftover, vs)
	}
	sortVertexSides(leftover)
	for _, vs := range leftover {
		if visited[vs.v] {
			continue
		}
		walk(vertexSide{vs.v, flipSide(vs.s)}) // walk exits through vs, the slot holding the edge
		unitigID++
	}

	return result, tigInfo, unitigID
}

func flipSide(s edgematrix.Side) edgematrix.Side {
	if s == edgematrix.Front {
		return edgematrix.Back
	}
	return edgematrix.Front
}

func sortVertexSides(vs []vertexSide) {
	sort.Slice(vs, func(i, j int) bool {
		if !vs[i].v.Equal(vs[j].v) {
			return vs[i].v.Less(vs[j].v)
		}
		return vs[i].s < vs[j].s
	})
}

// pathInfoByBucket groups each tig's PathInfo by lm-tig bucket id and
// index, the shape collate.Collator consumes. tigInfo (assigned
// per-tig directly by assignSeedPathInfo's walk) is authoritative; for
// any tig the walk never reached directly — fg.adj only covers tigs
// between two surviving matrix vertices, so a tig whose own endpoint
// never shows up there has no tigInfo entry — fall back to full (the
// vertex-keyed table expander.Expand produced) via that tig's single
// recorded representative vertex.
func pathInfoByBucket(fg *finalGraph, tigInfo map[tigKey]expander.PathInfo, full map[kmer.Kmer]expander.PathInfo) map[int]map[int]expander.PathInfo {
	out := make(map[int]map[int]expander.PathInfo)
	add := func(tk tigKey, info expander.PathInfo) {
		m, ok := out[tk.bucket]
		if !ok {
			m = make(map[int]expander.PathInfo)
			out[tk.bucket] = m
		}
		m[tk.index] = info
	}

	for tk, info := range tigInfo {
		add(tk, info)
	}
	for tk, v := range fg.tigVertex {
		if _, ok := tigInfo[tk]; ok {
			continue // already resolved precisely, per tig, during the walk
		}
		info, ok := full[v]
		if !ok {
			continue // vertex never resolved by any chain walk; defensively dropped
		}
		add(tk, info)
	}
	return out
}
