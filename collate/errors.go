package collate

import "errors"

// ErrMissingPathInfo is returned when a non-trivial lm-tig's bucket
// index has no corresponding PathInfo entry in the lookup table handed
// to CollateBucket — a sign the matrix contraction/expansion stage
// never resolved that vertex.
var ErrMissingPathInfo = errors.New("collate: lm-tig has no path info")
