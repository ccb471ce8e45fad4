package subgraph

import "github.com/katalvlaran/dbgc/kmer"

// slot is one open-addressing bucket. generation is compared against the
// table's current generation to tell a logically-empty slot (stale
// generation) from an occupied one in O(1), without zeroing memory on
// every Clear.
type slot struct {
	generation uint8
	occupied   bool
	key        kmer.Kmer
	state      StateConfig
}

// HashTable is a fixed-capacity open-addressing hash table mapping
// canonical k-mers to StateConfig, sized and cleared per spec.md section
// 4.2: "Fixed-capacity open-addressing hash table, size = next power of
// two >= ceil(estimated-vertex-count / load-factor) ... A generation
// counter (1 byte per slot) makes clear() O(1) amortised; on counter
// wrap, wipe the table." Insertion probing is linear.
//
// Not safe for concurrent use; one HashTable materializes one subgraph
// bucket, processed by a single worker (spec.md section 4.2's buffered
// per-worker updates happen upstream of the table itself).
type HashTable struct {
	slots      []slot
	mask       uint64
	generation uint8
	count      int
	seed       uint64
}

const loadFactor = 0.75

// NewHashTable allocates a table sized from an estimated vertex count
// (typically a HyperLogLog estimate with slack, per spec.md section
// 4.2's failure semantics: overflow is a fatal programming error because
// capacity already accounts for that slack).
func NewHashTable(estimatedVertices int, seed uint64) *HashTable {
	capacity := nextPow2(int(float64(estimatedVertices)/loadFactor) + 1)
	if capacity < 16 {
		capacity = 16
	}
	return &HashTable{
		slots: make([]slot, capacity),
		mask:  uint64(capacity - 1),
		seed:  seed,
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Len reports the number of live entries.
func (h *HashTable) Len() int { return h.count }

// Cap reports the table's slot capacity.
func (h *HashTable) Cap() int { return len(h.slots) }

func (h *HashTable) isLive(i uint64) bool {
	return h.slots[i].occupied && h.slots[i].generation == h.generation
}

func (h *HashTable) probe(key kmer.Kmer) (uint64, bool) {
	i := key.Hash(h.seed) & h.mask
	for n := 0; n < len(h.slots); n++ {
		if !h.isLive(i) {
			return i, false
		}
		if h.slots[i].key.Equal(key) {
			return i, true
		}
		i = (i + 1) & h.mask
	}
	return i, false // every slot is live and none holds key
}

// GetOrInsert returns a pointer to key's StateConfig, creating a
// zero-valued entry on first access. The pointer is valid only until the
// next Clear or GetOrInsert-triggered growth is never performed — callers
// must size the table generously up front per spec.md's fatal-overflow
// policy.
func (h *HashTable) GetOrInsert(key kmer.Kmer) (*StateConfig, error) {
	i, found := h.probe(key)
	if found {
		return &h.slots[i].state, nil
	}
	if h.count >= len(h.slots) {
		return nil, ErrOverflow
	}
	h.slots[i] = slot{generation: h.generation, occupied: true, key: key}
	h.count++
	return &h.slots[i].state, nil
}

// Get returns key's StateConfig and true if present.
func (h *HashTable) Get(key kmer.Kmer) (StateConfig, bool) {
	i, found := h.probe(key)
	if !found {
		return StateConfig{}, false
	}
	return h.slots[i].state, true
}

// Each calls fn once per live entry, in arbitrary slot order. fn must not
// mutate the table.
func (h *HashTable) Each(fn func(key kmer.Kmer, state *StateConfig)) {
	for i := range h.slots {
		if h.isLive(uint64(i)) {
			fn(h.slots[i].key, &h.slots[i].state)
		}
	}
}

// MarkVisited flags key's entry as visited by the unitig walk; a no-op
// if key is absent.
func (h *HashTable) MarkVisited(key kmer.Kmer) {
	if i, found := h.probe(key); found {
		h.slots[i].state.Visited = true
	}
}

// IsVisited reports whether key's entry has been marked visited.
func (h *HashTable) IsVisited(key kmer.Kmer) bool {
	i, found := h.probe(key)
	return found && h.slots[i].state.Visited
}

// Clear empties the table in O(1) amortised time by bumping the
// generation counter; on wraparound it physically wipes the slot array,
// matching spec.md section 4.2's clearing contract.
func (h *HashTable) Clear() {
	h.count = 0
	h.generation++
	if h.generation == 0 {
		for i := range h.slots {
			h.slots[i] = slot{}
		}
	}
}
