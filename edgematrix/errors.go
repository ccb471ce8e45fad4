package edgematrix

import "errors"

var (
	// ErrNotPowerOfTwo indicates P was not a power of two.
	ErrNotPowerOfTwo = errors.New("edgematrix: partition count must be a power of two")

	// ErrCellRange indicates (row,col) fell outside the upper triangle
	// 0 <= row <= col <= P.
	ErrCellRange = errors.New("edgematrix: cell out of range")
)
