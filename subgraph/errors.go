package subgraph

import "errors"

// Sentinel errors for the subgraph engine.
var (
	// ErrOverflow indicates the hash table is full — a fatal programming
	// error per spec.md section 4.2: "Hash table overflow is a fatal
	// programming error — capacity is provisioned from HyperLogLog
	// estimates with slack."
	ErrOverflow = errors.New("subgraph: hash table overflow")

	// ErrTruncatedRecord indicates a DecodeLmTig call was given fewer
	// bytes than its own length header promises.
	ErrTruncatedRecord = errors.New("subgraph: truncated lm-tig record")
)
