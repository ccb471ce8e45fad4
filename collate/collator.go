package collate

import (
	"io"
	"sort"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/expander"
	"github.com/katalvlaran/dbgc/subgraph"
)

// Collator stitches one lm-tig bucket's non-trivial records into final
// chains using the PathInfo table expander produced, per spec.md section
// 4.6.
type Collator struct {
	k    int
	sink *WorkerBuffer
}

// New returns a Collator that joins adjacent lm-tig pieces by trimming
// their k-1 base overlap, writing finished chains through buf.
func New(k int, buf *WorkerBuffer) *Collator {
	return &Collator{k: k, sink: buf}
}

// piece is one lm-tig positioned within its chain.
type piece struct {
	rank int
	seq  string
}

// CollateBucket streams reader's lm-tig records (in bucket-index order,
// 0-based) and groups them by the PathInfo m assigns each index into,
// reorienting per Orientation and ordering by Rank, then flushes one
// stitched record per chain id.
//
// M is spec.md section 4.6's "array indexed by intra-bucket lm-tig
// index"; here a map serves the same role since a bucket's non-trivial
// tig count is only known after expander has run.
func (c *Collator) CollateBucket(reader *atlas.Reader, m map[int]expander.PathInfo) error {
	chains := make(map[int][]piece)

	idx := 0
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		tig, err := subgraph.DecodeLmTig(raw)
		if err != nil {
			return err
		}
		info, ok := m[idx]
		idx++
		if !ok {
			return ErrMissingPathInfo
		}

		seq := tig.Sequence
		if !info.Orientation {
			seq = reverseComplement(seq)
		}
		chains[info.UnitigID] = append(chains[info.UnitigID], piece{rank: info.Rank, seq: seq})
	}

	ids := make([]int, 0, len(chains))
	for id := range chains {
		ids = append(ids, id)
	}
	sort.Ints(ids) // deterministic output order, independent of map iteration

	for _, id := range ids {
		ps := chains[id]
		sort.Slice(ps, func(i, j int) bool { return ps[i].rank < ps[j].rank })
		if err := c.sink.WriteRecord(id, c.stitch(ps)); err != nil {
			return err
		}
	}
	return nil
}

// stitch concatenates pieces in rank order, trimming each subsequent
// piece's leading k-1 bases since adjacent lm-tigs in a chain overlap by
// k-1 bases at their join (the shared (k-1)-mer that chained them).
func (c *Collator) stitch(ps []piece) string {
	if len(ps) == 0 {
		return ""
	}
	out := ps[0].seq
	for _, p := range ps[1:] {
		if len(p.seq) > c.k-1 {
			out += p.seq[c.k-1:]
		}
	}
	return out
}

var complement = map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}

func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complement[seq[i]]
	}
	return string(out)
}
