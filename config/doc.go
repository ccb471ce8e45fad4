// Package config centralizes the pipeline's construction parameters:
// k-mer length, minimizer length, coloring, parallelism, and memory
// budget. It follows the functional-options-over-a-private-struct
// idiom: build a Config with New, applying any number of Option
// values, then call Validate before starting the pipeline.
//
// There is no package-level mutable state; every stage receives its
// own *Config explicitly, constructed once at startup.
package config
