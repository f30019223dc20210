package suite

import "digital.vasic.benchmarks/pkg/benchmark"

// File represents the on-disk structure of a benchmark suite file.
// Suite files are YAML or JSON documents listing declarative
// benchmark definitions.
type File struct {
	Version    string                 `json:"version" yaml:"version"`
	Name       string                 `json:"name" yaml:"name"`
	Benchmarks []benchmark.Definition `json:"benchmarks" yaml:"benchmarks"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
