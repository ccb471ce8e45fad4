package color_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/atlas"
	"github.com/katalvlaran/dbgc/color"
)

func TestSortedUniqueCollapsesRun(t *testing.T) {
	require := require.New(t)
	got := color.SortedUnique([]int32{1, 1, 2, 2, 2, 5})
	require.Equal([]int32{1, 2, 5}, got)
}

// TestEngineMaterializesOnce drives two workers racing to resolve the
// same color-set concurrently and checks exactly one materialisation
// happened, with both workers agreeing on the final coordinate.
func TestEngineMaterializesOnce(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	table, err := color.NewTable(16)
	require.NoError(err)

	b1, err := atlas.OpenBucket(filepath.Join(dir, "repo1"))
	require.NoError(err)
	b2, err := atlas.OpenBucket(filepath.Join(dir, "repo2"))
	require.NoError(err)

	e1 := color.NewEngine(table, color.NewRepository(b1), 1)
	e2 := color.NewEngine(table, color.NewRepository(b2), 2)

	ids := []int32{3, 7, 9}

	var wg sync.WaitGroup
	coords := make([]color.Coordinate, 2)
	wg.Add(2)
	go func() { defer wg.Done(); _, c, err := e1.Resolve(ids); require.NoError(err); coords[0] = c }()
	go func() { defer wg.Done(); _, c, err := e2.Resolve(ids); require.NoError(err); coords[1] = c }()
	wg.Wait()

	require.Equal(coords[0], coords[1])
}
