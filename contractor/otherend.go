package contractor

import (
	"sync"

	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
)

// OtherEnd records, for one vertex eliminated by a column's diagonal
// contraction, which endpoint its internal chain now resolves to and the
// accumulated internal-edge weight along the way (spec.md section 4.4).
type OtherEnd struct {
	Vertex kmer.Kmer
	Side   edgematrix.Side
	IsPhi  bool
	Weight int
}

// vertexSide names one of a vertex's two discontinuity slots, the unit a
// diagonal edge actually connects (spec.md section 3: every edge names
// s_x and s_y, not just x and y).
type vertexSide struct {
	v kmer.Kmer
	s edgematrix.Side
}

func flip(s edgematrix.Side) edgematrix.Side {
	if s == edgematrix.Front {
		return edgematrix.Back
	}
	return edgematrix.Front
}

// link is one raw diagonal incidence: "the slot at key connects, with
// this weight, to other".
type link struct {
	other  vertexSide
	isPhi  bool
	weight int
}

// columnMap accumulates one column's raw diagonal incidences (keyed by
// vertexSide, since a vertex's front and back slots can each lead
// somewhere different) and resolves them into per-vertex OtherEnd
// chains, the way prim_kruskal/kruskal.go's find() walks a union-find
// parent chain to its root rather than trusting a single hop.
//
// A single mutex guards the whole map: Go has no portable lock-free map
// keyed on an arbitrary comparable struct without unsafe tricks, and
// this implementation reads one diagonal block with one goroutine at a
// time, so the mutex sees no real contention.
type columnMap struct {
	mu  sync.Mutex
	raw map[vertexSide]link
}

func newColumnMap() *columnMap {
	return &columnMap{raw: make(map[vertexSide]link)}
}

// record stores the raw incidence discovered for one edge endpoint: `at`
// must name a real vertex's slot (callers never record against ϕ).
func (c *columnMap) record(at vertexSide, to vertexSide, toIsPhi bool, weight int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raw[at] = link{other: to, isPhi: toIsPhi, weight: weight}
}

// isInternal reports whether v's chain lies entirely within this
// column's diagonal block: both of its slots were touched by a diagonal
// edge, so v has no remaining off-diagonal edge of its own and can be
// eliminated.
func (c *columnMap) isInternal(v kmer.Kmer) bool {
	_, front := c.raw[vertexSide{v, edgematrix.Front}]
	_, back := c.raw[vertexSide{v, edgematrix.Back}]
	return front && back
}

// resolve walks the chain starting at the slot opposite `enter` (the
// side v was entered from) until it reaches a slot that is not fully
// internal, or phi, summing incidence weight along the way. This is the
// "find" half of the union-find idiom: each fully-internal vertex is a
// path-compressible link, and resolve is the path walk to its root.
func (c *columnMap) resolve(v kmer.Kmer, enter edgematrix.Side) OtherEnd {
	cur := vertexSide{v, flip(enter)}
	total := 0
	for {
		l, ok := c.raw[cur]
		if !ok {
			// No further diagonal incidence recorded on this slot: the
			// chain dead-ends here, which only happens for a malformed
			// or single-incidence vertex; report itself as its own end.
			return OtherEnd{Vertex: cur.v, Side: cur.s, Weight: total}
		}
		total += l.weight
		if l.isPhi {
			return OtherEnd{Side: l.other.s, IsPhi: true, Weight: total}
		}
		if !c.isInternal(l.other.v) {
			return OtherEnd{Vertex: l.other.v, Side: l.other.s, Weight: total}
		}
		cur = vertexSide{l.other.v, flip(l.other.s)}
	}
}

// internalVertices returns every vertex this column's diagonal block
// marks fully internal (eliminated).
func (c *columnMap) internalVertices() []kmer.Kmer {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[kmer.Kmer]bool)
	var out []kmer.Kmer
	for vs := range c.raw {
		if seen[vs.v] {
			continue
		}
		seen[vs.v] = true
		if c.isInternal(vs.v) {
			out = append(out, vs.v)
		}
	}
	return out
}

func (c *columnMap) len() int {
	return len(c.internalVertices())
}
