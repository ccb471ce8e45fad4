package expander

import "errors"

// ErrUnresolved names a D_j record whose far end has no PathInfo by the
// time its column is replayed. Expand does not return it: such records
// are left unresolved and their vertex receives no PathInfo.
var ErrUnresolved = errors.New("expander: diagonal record's far end has no assigned path info")
