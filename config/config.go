package config

import "runtime"

// MemoryMode selects a memory-budget policy. Validate requires a
// positive MemoryBudgetGiB under MemoryStrict; no pipeline stage reads
// MemoryMode or MemoryBudgetGiB, so every mode runs as
// MemoryUnrestricted does.
type MemoryMode int

const (
	// MemoryUnrestricted lets subgraph workers size hash tables purely from
	// HyperLogLog estimates, with no upper cap on simultaneously-resident
	// subgraphs.
	MemoryUnrestricted MemoryMode = iota

	// MemorySoft names a cap on simultaneously-resident subgraphs that
	// tolerates transient overshoot; no stage applies such a cap.
	MemorySoft

	// MemoryStrict names MemoryBudgetGiB as a hard ceiling; Validate
	// requires the budget to be positive, and no stage applies it.
	MemoryStrict
)

// Option mutates a Config under construction. As a rule, Option
// constructors never panic and silently ignore out-of-range inputs,
// leaving that to Validate.
type Option func(*Config)

// Config is the single explicit configuration object threaded through
// every pipeline stage. It is built once via New and never mutated
// afterward; stages treat it as read-only.
type Config struct {
	// K is the k-mer length. Must be odd.
	K int

	// L is the minimizer length, l <= k.
	L int

	// Graphs is the number of subgraph buckets G, a power of two.
	Graphs int

	// GraphsPerAtlas is the number of subgraphs sharing one atlas file set.
	GraphsPerAtlas int

	// Colored enables the color engine (stage f).
	Colored bool

	// Threads is the total worker parallelism target N.
	Threads int

	// ReaderThreads is R, in [2,4]. The Partitioner reads its source on
	// one goroutine and uses R to size its fragment channel (4R) and its
	// worker pool (Threads-R).
	ReaderThreads int

	// BytesPerBatch bounds how much input a reader consumes before
	// pausing for workers to drain, used by the colored-mode batching
	// protocol (spec.md 4.1).
	BytesPerBatch int64

	// WorkerBufferBytes is the worker-local buffer size W before a merge
	// into an atlas's shared buffer.
	WorkerBufferBytes int

	// MemoryMode selects budget enforcement.
	MemoryMode MemoryMode

	// MemoryBudgetGiB is the cap used when MemoryMode != MemoryUnrestricted.
	MemoryBudgetGiB int

	// WorkDir is the writable scratch directory for atlas/bucket/edge-matrix
	// files.
	WorkDir string

	// OutputPrefix names the unitigs (and, if Colored, colors) output files.
	OutputPrefix string
}

// New builds a Config from sane defaults, then applies opts in order;
// later options override earlier ones. Call Validate before use.
func New(opts ...Option) *Config {
	cfg := &Config{
		K:                 31,
		L:                 11,
		Graphs:            16384,
		GraphsPerAtlas:    128,
		Colored:           false,
		Threads:           runtime.NumCPU(),
		ReaderThreads:     2,
		BytesPerBatch:     64 << 20,
		WorkerBufferBytes: 1 << 20,
		MemoryMode:        MemoryUnrestricted,
		MemoryBudgetGiB:   0,
		WorkDir:           ".",
		OutputPrefix:      "out",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithK sets the k-mer length.
func WithK(k int) Option {
	return func(c *Config) { c.K = k }
}

// WithL sets the minimizer length.
func WithL(l int) Option {
	return func(c *Config) { c.L = l }
}

// WithGraphs sets the number of subgraph buckets G and, derivatively,
// how many of them share an atlas (capped at the previous GraphsPerAtlas
// or G itself, whichever is smaller).
func WithGraphs(g int) Option {
	return func(c *Config) {
		c.Graphs = g
		if c.GraphsPerAtlas > g {
			c.GraphsPerAtlas = g
		}
	}
}

// WithGraphsPerAtlas overrides how many subgraphs share one atlas.
func WithGraphsPerAtlas(n int) Option {
	return func(c *Config) { c.GraphsPerAtlas = n }
}

// WithColoring turns the color engine on or off.
func WithColoring(enabled bool) Option {
	return func(c *Config) { c.Colored = enabled }
}

// WithThreads sets the total worker parallelism target.
func WithThreads(n int) Option {
	return func(c *Config) { c.Threads = n }
}

// WithReaderThreads sets the dedicated reader-pool size.
func WithReaderThreads(n int) Option {
	return func(c *Config) { c.ReaderThreads = n }
}

// WithBytesPerBatch sets the colored-mode batch size, in bytes of input
// consumed before the reader pauses for workers to drain.
func WithBytesPerBatch(n int64) Option {
	return func(c *Config) { c.BytesPerBatch = n }
}

// WithWorkerBufferBytes sets the worker-local buffer size before merge
// into an atlas's shared buffer.
func WithWorkerBufferBytes(n int) Option {
	return func(c *Config) { c.WorkerBufferBytes = n }
}

// WithMemoryBudget sets a soft or strict memory budget in GiB.
func WithMemoryBudget(mode MemoryMode, giB int) Option {
	return func(c *Config) {
		c.MemoryMode = mode
		c.MemoryBudgetGiB = giB
	}
}

// WithWorkDir sets the scratch directory.
func WithWorkDir(dir string) Option {
	return func(c *Config) { c.WorkDir = dir }
}

// WithOutputPrefix sets the output file name prefix.
func WithOutputPrefix(prefix string) Option {
	return func(c *Config) { c.OutputPrefix = prefix }
}
