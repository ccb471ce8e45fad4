package pipeline

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/collate"
	"github.com/katalvlaran/dbgc/config"
	"github.com/katalvlaran/dbgc/contractor"
	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/expander"
	"github.com/katalvlaran/dbgc/partition"
	"github.com/katalvlaran/dbgc/seqio"
	"github.com/katalvlaran/dbgc/subgraph"
)

// chainIDOffset separates the two unitig id namespaces written to final
// output: trivial unitigs (streamed straight out of subgraph.Engine.Run,
// before contraction has assigned any chain its id) count up from 0,
// while collated chain ids, assigned later by assignSeedPathInfo, start
// here. Any single atlas run is expected to produce far fewer trivial
// unitigs than this offset.
const chainIDOffset = 1 << 30

// Build runs every stage of spec.md section 2's pipeline diagram over
// src, writing the compacted unitigs to cfg.OutputPrefix+".fa" (and, if
// cfg.Colored, cfg.OutputPrefix+".colors") under cfg.WorkDir. seed is the
// k-mer/minimizer hash seed shared by every stage; callers that need
// reproducible output across runs of the same input should pass a fixed
// seed.
func Build(ctx context.Context, cfg *config.Config, seed uint64, src seqio.FragmentSource) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return err
	}

	atlases := newAtlasSet(cfg)
	defer atlases.closeAll()
	for g := 0; g < cfg.Graphs; g++ {
		atlases.AtlasFor(g) // pre-open every atlas so Drain below sees all of them, even ones no fragment ever hashed into
	}

	part := partition.New(cfg, seed, atlases)
	if err := part.Run(ctx, src); err != nil {
		return err
	}

	numAtlases := atlas.NumAtlases(cfg.Graphs, cfg.GraphsPerAtlas)
	for id := 0; id < numAtlases; id++ {
		a, ok := atlases.atlasByID(id)
		if !ok {
			continue
		}
		if err := a.Drain(); err != nil {
			return err
		}
	}

	outFile, err := os.Create(filepath.Join(cfg.WorkDir, cfg.OutputPrefix+".fa"))
	if err != nil {
		return err
	}
	defer outFile.Close()
	out := bufio.NewWriterSize(outFile, 1<<20)
	defer out.Flush()
	outputSink := collate.NewOutputSink(out)

	matrix, err := edgematrix.Open(filepath.Join(cfg.WorkDir, "edges"), cfg.Graphs)
	if err != nil {
		return err
	}
	defer matrix.Close()

	lmtigDir := filepath.Join(cfg.WorkDir, "lmtigs")
	if err := os.MkdirAll(lmtigDir, 0o755); err != nil {
		return err
	}

	var colors *colorStage
	if cfg.Colored {
		colors, err = newColorStage(cfg)
		if err != nil {
			return err
		}
		defer colors.close()
	}

	trivialSink := newTrivialUnitigSink(collate.NewWorkerBuffer(outputSink))
	for g := 0; g < cfg.Graphs; g++ {
		atlasID := atlas.AtlasID(g, cfg.GraphsPerAtlas)
		graphID := atlas.GraphID(g, cfg.GraphsPerAtlas)
		a, ok := atlases.atlasByID(atlasID)
		if !ok {
			continue
		}
		shard, err := a.Shard(graphID)
		if err != nil {
			return err
		}
		if shard.Count() == 0 {
			continue
		}

		estReader, err := shard.Reader()
		if err != nil {
			return err
		}
		estimate, err := estimateVertices(estReader, cfg.K, seed)
		estReader.Close()
		if err != nil {
			return err
		}

		engine := subgraph.NewEngine(cfg.K, seed, cfg.Graphs, g, estimate)
		loadReader, err := shard.Reader()
		if err != nil {
			return err
		}
		err = engine.Load(loadReader)
		loadReader.Close()
		if err != nil {
			return err
		}

		lmtigBucket, err := atlas.OpenBucket(filepath.Join(lmtigDir, itoa(g)))
		if err != nil {
			return err
		}
		lmStore := collate.NewBucketLmTigStore(lmtigBucket)

		err = engine.Run(trivialSink, lmStore, &matrixEdgeSink{matrix})
		if err == nil {
			err = lmtigBucket.Flush()
		}
		lmtigBucket.Close()
		if err != nil {
			return err
		}

		if colors != nil {
			if err := colors.resolveSubgraph(shard, g); err != nil {
				return err
			}
		}
	}
	if err := trivialSink.buf.Flush(); err != nil {
		return err
	}
	if colors != nil {
		if err := colors.flush(); err != nil {
			return err
		}
	}

	columnsDir := filepath.Join(cfg.WorkDir, "columns")
	if err := os.MkdirAll(columnsDir, 0o755); err != nil {
		return err
	}
	contract := contractor.New(matrix, seed, columnsDir)
	if err := contract.Run(ctx); err != nil {
		return err
	}

	eliminated, err := eliminatedSet(columnsDir, matrix.P())
	if err != nil {
		return err
	}
	fg, err := harvestFinalGraph(matrix, eliminated)
	if err != nil {
		return err
	}
	seedInfo, tigInfo, _ := assignSeedPathInfo(fg, chainIDOffset)

	exp := expander.New(columnsDir, matrix.P())
	full, err := exp.Expand(seedInfo)
	if err != nil {
		return err
	}
	perBucket := pathInfoByBucket(fg, tigInfo, full)

	collateBuf := collate.NewWorkerBuffer(outputSink)
	collator := collate.New(cfg.K, collateBuf)
	for g := 0; g < cfg.Graphs; g++ {
		pathMap, ok := perBucket[g]
		if !ok {
			continue
		}
		reader, err := atlas.OpenReader(filepath.Join(lmtigDir, itoa(g)))
		if err != nil {
			return err
		}
		err = collator.CollateBucket(reader, pathMap)
		reader.Close()
		if err != nil {
			return err
		}
	}
	return collateBuf.Flush()
}
