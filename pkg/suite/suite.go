// Package suite loads declarative benchmark suite files. A suite
// file names its benchmarks, the counters they track, and the
// assertions evaluated against the aggregated trial statistics.
package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// Suite manages collections of benchmark definitions loaded
// from suite files.
type Suite struct {
	mu          sync.RWMutex
	definitions map[benchmark.ID]*benchmark.Definition
	order       []benchmark.ID
	sources     []string
}

// New creates a new empty Suite.
func New() *Suite {
	return &Suite{
		definitions: make(map[benchmark.ID]*benchmark.Definition),
	}
}

// LoadFile loads benchmark definitions from a YAML or JSON suite
// file. The format is chosen by extension: .json parses as JSON,
// anything else as YAML.
func (s *Suite) LoadFile(path string) error {
	file, err := ParseFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range file.Benchmarks {
		def := &file.Benchmarks[i]
		if def.ID == "" {
			return fmt.Errorf(
				"benchmark at index %d in %s has no ID", i, path,
			)
		}
		if _, exists := s.definitions[def.ID]; !exists {
			s.order = append(s.order, def.ID)
		}
		s.definitions[def.ID] = def
	}
	s.sources = append(s.sources, path)
	return nil
}

// LoadDir loads all .yaml, .yml and .json files from a directory.
func (s *Suite) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		if err := s.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile reads and decodes a suite file without registering
// its definitions anywhere.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file %s: %w", path, err)
	}

	var file File
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse suite file %s: %w", path, err)
	}
	return &file, nil
}

// Get retrieves a benchmark definition by ID.
func (s *Suite) Get(id benchmark.ID) (*benchmark.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[id]
	return def, ok
}

// All returns all loaded definitions in load order.
func (s *Suite) All() []*benchmark.Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*benchmark.Definition, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.definitions[id])
	}
	return result
}

// ByCategory returns definitions filtered by category, in load order.
func (s *Suite) ByCategory(category string) []*benchmark.Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*benchmark.Definition
	for _, id := range s.order {
		if def := s.definitions[id]; def.Category == category {
			result = append(result, def)
		}
	}
	return result
}

// Count returns the number of loaded definitions.
func (s *Suite) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.definitions)
}

// Sources returns the list of loaded file paths.
func (s *Suite) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.sources))
	copy(result, s.sources)
	return result
}
