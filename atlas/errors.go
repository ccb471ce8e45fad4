package atlas

import "errors"

// Sentinel errors for atlas/bucket construction and I/O.
var (
	// ErrNotPowerOfTwo indicates G or GraphsPerAtlas was not a power of two.
	ErrNotPowerOfTwo = errors.New("atlas: graph counts must be powers of two")

	// ErrSubgraphRange indicates a subgraph id outside [0, G).
	ErrSubgraphRange = errors.New("atlas: subgraph id out of range")

	// ErrTruncatedRecord indicates a bucket file ended mid-record.
	ErrTruncatedRecord = errors.New("atlas: truncated record")

	// ErrClosed indicates an operation on a Bucket after Close.
	ErrClosed = errors.New("atlas: bucket is closed")
)
