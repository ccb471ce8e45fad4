package pipeline

import (
	"path/filepath"
	"sync"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/config"
)

// atlasSet lazily opens one atlas.Atlas per atlas id under
// cfg.WorkDir/atlases/<id>, implementing partition.AtlasLocator. Atlases
// are opened on first use and kept resident for the life of the run; a
// mutex guards the open-on-demand path since partition.Partitioner calls
// AtlasFor concurrently from its worker pool.
type atlasSet struct {
	mu             sync.Mutex
	dir            string
	graphsPerAtlas int
	capacityBytes  int
	colored        bool
	opened         map[int]*atlas.Atlas
}

func newAtlasSet(cfg *config.Config) *atlasSet {
	return &atlasSet{
		dir:            filepath.Join(cfg.WorkDir, "atlases"),
		graphsPerAtlas: cfg.GraphsPerAtlas,
		capacityBytes:  cfg.WorkerBufferBytes,
		colored:        cfg.Colored,
		opened:         make(map[int]*atlas.Atlas),
	}
}

// AtlasFor implements partition.AtlasLocator.
func (s *atlasSet) AtlasFor(subgraph int) (*atlas.Atlas, int) {
	atlasID := atlas.AtlasID(subgraph, s.graphsPerAtlas)
	graphID := atlas.GraphID(subgraph, s.graphsPerAtlas)

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.opened[atlasID]
	if !ok {
		var err error
		a, err = atlas.Open(filepath.Join(s.dir, itoa(atlasID)), atlasID, s.graphsPerAtlas, s.capacityBytes, s.colored)
		if err != nil {
			// AtlasLocator has no error return (spec.md section 3's
			// atlas_id/graph_id split is a pure function); a workDir
			// that cannot be created is an environment failure Build
			// already checked for before starting the partitioner.
			panic(err)
		}
		s.opened[atlasID] = a
	}
	return a, graphID
}

// atlasByID returns an already-opened atlas by id, used once partition
// has finished and Build needs to read every subgraph's shard back out.
func (s *atlasSet) atlasByID(atlasID int) (*atlas.Atlas, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.opened[atlasID]
	return a, ok
}

func (s *atlasSet) closeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, a := range s.opened {
		if err := a.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
