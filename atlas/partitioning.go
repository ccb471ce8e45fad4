package atlas

import "github.com/katalvlaran/dbgc/config"

// SubgraphOf maps a 64-bit minimizer hash to its subgraph id g in
// [0, G), per spec.md invariant P1: "partition(x) is determined solely
// by hash(minimizer(prefix_{k-1}(x)))".
func SubgraphOf(minimizerHash uint64, graphs int) int {
	return int(minimizerHash & uint64(graphs-1))
}

// AtlasID returns the atlas that owns subgraph g: atlas_id(g) = g >>
// log2(graphsPerAtlas), per spec.md section 3.
func AtlasID(g, graphsPerAtlas int) int {
	return g >> config.Log2(graphsPerAtlas)
}

// GraphID returns g's index within its atlas: graph_id(g) = g &
// (graphsPerAtlas - 1), per spec.md section 3.
func GraphID(g, graphsPerAtlas int) int {
	return g & (graphsPerAtlas - 1)
}

// NumAtlases returns how many Atlas instances are needed to cover
// graphs subgraphs at graphsPerAtlas each.
func NumAtlases(graphs, graphsPerAtlas int) int {
	return graphs / graphsPerAtlas
}
