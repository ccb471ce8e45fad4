package edgematrix_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/edgematrix"
	"github.com/katalvlaran/dbgc/kmer"
)

func TestEdgeEncodeDecodeRoundTrip(t *testing.T) {
	require := require.New(t)

	x := kmer.MustEncode("ACGTA")
	y := kmer.MustEncode("TTTTA")
	e := edgematrix.Edge{
		X:           edgematrix.Endpoint{Vertex: x, Side: edgematrix.Front},
		Y:           edgematrix.Endpoint{Vertex: y, Side: edgematrix.Back},
		Weight:      3,
		Bucket:      7,
		BucketIndex: 12,
	}
	decoded, err := edgematrix.DecodeEdge(e.Encode())
	require.NoError(err)
	require.Equal(e.Weight, decoded.Weight)
	require.Equal(e.Bucket, decoded.Bucket)
	require.Equal(e.BucketIndex, decoded.BucketIndex)
	require.True(decoded.X.Vertex.Equal(x))
	require.True(decoded.Y.Vertex.Equal(y))
	require.Equal(edgematrix.Front, decoded.X.Side)
	require.Equal(edgematrix.Back, decoded.Y.Side)
}

func TestEdgePhiEndpointRoundTrip(t *testing.T) {
	require := require.New(t)

	e := edgematrix.Edge{
		X: edgematrix.Endpoint{IsPhi: true, Side: edgematrix.Front},
		Y: edgematrix.Endpoint{Vertex: kmer.MustEncode("CCCCC"), Side: edgematrix.Back},
	}
	decoded, err := edgematrix.DecodeEdge(e.Encode())
	require.NoError(err)
	require.True(decoded.X.IsPhi)
	require.False(decoded.Y.IsPhi)
}

func TestMatrixAppendAndRead(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	m, err := edgematrix.Open(dir, 4)
	require.NoError(err)
	defer m.Close()

	e := edgematrix.Edge{
		X:      edgematrix.Endpoint{Vertex: kmer.MustEncode("AAAAA"), Side: edgematrix.Front},
		Y:      edgematrix.Endpoint{Vertex: kmer.MustEncode("TTTTT"), Side: edgematrix.Back},
		Weight: 1,
	}
	_, err = m.Append(1, 3, e)
	require.NoError(err)

	cell, err := m.Cell(1, 3)
	require.NoError(err)
	reader, err := cell.Reader()
	require.NoError(err)
	defer reader.Close()

	raw, err := reader.Next()
	require.NoError(err)
	decoded, err := edgematrix.DecodeEdge(raw)
	require.NoError(err)
	require.Equal(1, decoded.Weight)

	_, err = reader.Next()
	require.ErrorIs(err, io.EOF)
}

func TestMatrixRejectsLowerTriangle(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	m, err := edgematrix.Open(dir, 2)
	require.NoError(err)
	defer m.Close()

	_, err = m.Cell(2, 1)
	require.ErrorIs(err, edgematrix.ErrCellRange)
}

func TestMatrixRejectsNonPowerOfTwo(t *testing.T) {
	require := require.New(t)

	_, err := edgematrix.Open(t.TempDir(), 3)
	require.ErrorIs(err, edgematrix.ErrNotPowerOfTwo)
}

func TestMatrixColumnAndRow(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	m, err := edgematrix.Open(dir, 2)
	require.NoError(err)
	defer m.Close()

	col, err := m.Column(2)
	require.NoError(err)
	require.Len(col, 3) // rows 0,1,2

	row, err := m.Row(0)
	require.NoError(err)
	require.Len(row, 3) // cols 0,1,2
}
