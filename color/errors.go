package color

import "errors"

var (
	// ErrCapacityNotPowerOfTwo indicates a non-power-of-two table capacity.
	ErrCapacityNotPowerOfTwo = errors.New("color: table capacity must be a power of two")

	// ErrTableFull indicates the color table ran out of open-addressing
	// slots — a fatal sizing error, since the table is provisioned from
	// the expected number of distinct color-sets.
	ErrTableFull = errors.New("color: table full")
)
