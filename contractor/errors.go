package contractor

import "errors"

var (
	// ErrSelfLoop names a diagonal edge whose two endpoints are the same
	// vertex on the same side. ContractColumn does not return it: such a
	// record cannot be chained and is silently dropped rather than
	// contracted (spec.md section 4.4's
	// "self-loops terminate the chain rather than extend it").
	ErrSelfLoop = errors.New("contractor: diagonal self-loop")

	// ErrColumnOutOfRange is returned when ContractColumn is called with
	// a column index outside [0, P].
	ErrColumnOutOfRange = errors.New("contractor: column out of range")
)
