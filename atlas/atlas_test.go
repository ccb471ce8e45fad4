package atlas_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/atlas"
)

func TestSubgraphAtlasGraphIDMath(t *testing.T) {
	require := require.New(t)

	const graphsPerAtlas = 128
	g := 257 // atlas 2, graph 1 (257 = 2*128 + 1)
	require.Equal(2, atlas.AtlasID(g, graphsPerAtlas))
	require.Equal(1, atlas.GraphID(g, graphsPerAtlas))
	require.Equal(128, atlas.NumAtlases(16384, graphsPerAtlas))
}

func TestBucketAppendAndRead(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	b, err := atlas.OpenBucket(dir + "/shard")
	require.NoError(err)

	recs := [][]byte{[]byte("hello"), []byte("world"), {}}
	for _, r := range recs {
		_, err := b.Append(r)
		require.NoError(err)
	}
	require.NoError(b.Flush())
	require.Equal(int64(3), b.Count())

	reader, err := b.Reader()
	require.NoError(err)
	defer reader.Close()

	var got [][]byte
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(err)
		got = append(got, rec)
	}
	require.Equal(recs, got)
	require.NoError(b.Close())
}

func TestBucketRemove(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := dir + "/removable"
	b, err := atlas.OpenBucket(path)
	require.NoError(err)
	_, err = b.Append([]byte("x"))
	require.NoError(err)
	require.NoError(b.Remove())

	_, err = atlas.OpenBucket(path)
	require.NoError(err) // recreated fresh, not an error to reopen a removed path
}

func TestSuperKmerRecordRoundTrip(t *testing.T) {
	require := require.New(t)

	rec := atlas.SuperKmerRecord{
		GraphID:  3,
		LDisc:    true,
		RDisc:    false,
		LJoined:  true,
		RJoined:  true,
		SourceID: 42,
		Bases:    17,
		Packed:   []byte{0xAB, 0xCD, 0x01},
	}
	decoded, err := atlas.DecodeSuperKmerRecord(rec.Encode())
	require.NoError(err)
	require.Equal(rec, decoded)
}

func TestDecodeRejectsTruncated(t *testing.T) {
	require := require.New(t)

	_, err := atlas.DecodeSuperKmerRecord([]byte{1, 2, 3})
	require.ErrorIs(err, atlas.ErrTruncatedRecord)
}

func TestAtlasMergeFlushesOnCapacity(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	a, err := atlas.Open(dir, 0, 4, 64, false) // tiny capacity forces a flush quickly
	require.NoError(err)
	defer a.Close()

	wb := atlas.NewWorkerBuffer()
	for i := 0; i < 10; i++ {
		wb.Append(atlas.SuperKmerRecord{GraphID: i % 4, Bases: 31, Packed: make([]byte, 8)})
	}
	require.NoError(a.Merge(wb))
	require.Equal(0, wb.Len())

	require.NoError(a.Drain())

	shard, err := a.Shard(0)
	require.NoError(err)
	require.Greater(shard.Count(), int64(0))
}

func TestAtlasColoredModeSortsBySourceID(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	a, err := atlas.Open(dir, 1, 2, 1<<20, true)
	require.NoError(err)
	defer a.Close()

	wb := atlas.NewWorkerBuffer()
	wb.Append(atlas.SuperKmerRecord{GraphID: 0, SourceID: 5, Bases: 31, Packed: []byte{1}})
	wb.Append(atlas.SuperKmerRecord{GraphID: 0, SourceID: 1, Bases: 31, Packed: []byte{2}})
	wb.Append(atlas.SuperKmerRecord{GraphID: 0, SourceID: 3, Bases: 31, Packed: []byte{3}})

	require.NoError(a.FlushBatch(wb))

	shard, err := a.Shard(0)
	require.NoError(err)
	reader, err := shard.Reader()
	require.NoError(err)
	defer reader.Close()

	var sourceIDs []int32
	for {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(err)
		rec, err := atlas.DecodeSuperKmerRecord(raw)
		require.NoError(err)
		sourceIDs = append(sourceIDs, rec.SourceID)
	}
	require.Equal([]int32{1, 3, 5}, sourceIDs)
}
