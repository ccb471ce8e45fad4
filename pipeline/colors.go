package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/color"
	"github.com/katalvlaran/dbgc/config"
)

// colorTableCapacity sizes the shared color-coordinate table; must stay
// a power of two per color.NewTable.
const colorTableCapacity = 1 << 16

// colorStage drives the color engine (spec.md section 4.7) at subgraph
// granularity: one color-set per subgraph bucket, built from every
// source id its super-k-mers carry. This is coarser than the
// per-vertex color-shift sets spec.md describes — see DESIGN.md's
// pipeline/ entry for why subgraph granularity was chosen here — but
// exercises the same resolve-once-materialize protocol color.Engine
// implements.
type colorStage struct {
	engine *color.Engine
	repo   *atlas.Bucket
	out    *os.File
	buf    *bufio.Writer
}

func newColorStage(cfg *config.Config) (*colorStage, error) {
	table, err := color.NewTable(colorTableCapacity)
	if err != nil {
		return nil, err
	}
	repo, err := atlas.OpenBucket(filepath.Join(cfg.WorkDir, "colors.repo"))
	if err != nil {
		return nil, err
	}
	out, err := os.Create(filepath.Join(cfg.WorkDir, cfg.OutputPrefix+".colors"))
	if err != nil {
		repo.Close()
		return nil, err
	}
	return &colorStage{
		engine: color.NewEngine(table, color.NewRepository(repo), 0),
		repo:   repo,
		out:    out,
		buf:    bufio.NewWriter(out),
	}, nil
}

// resolveSubgraph collects every distinct source id shard's super-k-mers
// carry (already sorted by the colored-mode batching invariant), resolves
// the resulting color-set through the engine, and records subgraph g's
// coordinate to the sidecar colors file.
func (c *colorStage) resolveSubgraph(shard *atlas.Bucket, g int) error {
	reader, err := shard.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	var ids []int32
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		rec, err := atlas.DecodeSuperKmerRecord(raw)
		if err != nil {
			return err
		}
		ids = append(ids, rec.SourceID)
	}
	if len(ids) == 0 {
		return nil
	}

	_, coord, err := c.engine.Resolve(ids)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.buf, "%d\t%d\t%d\n", g, coord.WorkerID, coord.BucketIndex)
	return err
}

func (c *colorStage) flush() error {
	return c.buf.Flush()
}

func (c *colorStage) close() {
	c.out.Close()
	c.repo.Close()
}
