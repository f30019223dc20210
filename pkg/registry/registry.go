// Package registry provides benchmark registration, discovery, and
// deterministic execution ordering.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// Registry defines the interface for managing benchmarks and their
// definitions.
type Registry interface {
	// Register adds a benchmark implementation.
	Register(b benchmark.Benchmark) error

	// RegisterDefinition adds a declarative definition.
	RegisterDefinition(def *benchmark.Definition) error

	// Get retrieves a benchmark by ID.
	Get(id benchmark.ID) (benchmark.Benchmark, error)

	// GetDefinition retrieves a definition by ID.
	GetDefinition(
		id benchmark.ID,
	) (*benchmark.Definition, error)

	// List returns all registered benchmarks sorted by ID.
	List() []benchmark.Benchmark

	// ListDefinitions returns all registered definitions sorted
	// by ID.
	ListDefinitions() []*benchmark.Definition

	// ListByCategory returns benchmarks in the given category.
	ListByCategory(category string) []benchmark.Benchmark

	// ExecutionOrder returns all benchmarks in deterministic run
	// order: category first, then ID.
	ExecutionOrder() []benchmark.Benchmark

	// Unregister removes a benchmark and its definition.
	Unregister(id benchmark.ID)

	// Clear removes all benchmarks and definitions.
	Clear()

	// Count returns the number of registered benchmarks.
	Count() int
}

// DefaultRegistry is the standard Registry implementation. It is
// safe for concurrent use.
type DefaultRegistry struct {
	mu          sync.RWMutex
	benchmarks  map[benchmark.ID]benchmark.Benchmark
	definitions map[benchmark.ID]*benchmark.Definition
}

// NewRegistry creates a new, empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		benchmarks:  make(map[benchmark.ID]benchmark.Benchmark),
		definitions: make(map[benchmark.ID]*benchmark.Definition),
	}
}

// Default is the package-level default registry instance.
var Default = NewRegistry()

// Register adds a benchmark to the registry. Returns an error if a
// benchmark with the same ID is already registered.
func (r *DefaultRegistry) Register(
	b benchmark.Benchmark,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := b.ID()
	if _, exists := r.benchmarks[id]; exists {
		return fmt.Errorf(
			"benchmark already registered: %s", id,
		)
	}

	r.benchmarks[id] = b
	return nil
}

// RegisterDefinition adds a declarative benchmark definition after
// validating it. Returns an error if a definition with the same ID
// already exists.
func (r *DefaultRegistry) RegisterDefinition(
	def *benchmark.Definition,
) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.ID]; exists {
		return fmt.Errorf(
			"benchmark definition already registered: %s",
			def.ID,
		)
	}

	r.definitions[def.ID] = def
	return nil
}

// Get retrieves a benchmark by ID.
func (r *DefaultRegistry) Get(
	id benchmark.ID,
) (benchmark.Benchmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.benchmarks[id]
	if !exists {
		return nil, fmt.Errorf(
			"benchmark not found: %s", id,
		)
	}
	return b, nil
}

// GetDefinition retrieves a definition by ID.
func (r *DefaultRegistry) GetDefinition(
	id benchmark.ID,
) (*benchmark.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[id]
	if !exists {
		return nil, fmt.Errorf(
			"benchmark definition not found: %s", id,
		)
	}
	return def, nil
}

// List returns all registered benchmarks sorted by ID.
func (r *DefaultRegistry) List() []benchmark.Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(
		[]benchmark.Benchmark, 0, len(r.benchmarks),
	)
	for _, b := range r.benchmarks {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// ListDefinitions returns all registered definitions sorted by ID.
func (r *DefaultRegistry) ListDefinitions() []*benchmark.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(
		[]*benchmark.Definition, 0, len(r.definitions),
	)
	for _, d := range r.definitions {
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// ListByCategory returns benchmarks in the given category, sorted
// by ID.
func (r *DefaultRegistry) ListByCategory(
	category string,
) []benchmark.Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []benchmark.Benchmark
	for _, b := range r.benchmarks {
		if b.Category() == category {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// ExecutionOrder returns all benchmarks in deterministic run order:
// category first, then ID within a category. Benchmarks declare no
// inter-benchmark dependencies; ordering exists for reproducible
// reports.
func (r *DefaultRegistry) ExecutionOrder() []benchmark.Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(
		[]benchmark.Benchmark, 0, len(r.benchmarks),
	)
	for _, b := range r.benchmarks {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category() != out[j].Category() {
			return out[i].Category() < out[j].Category()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Unregister removes a benchmark and its definition. Removing an
// unknown ID is a no-op.
func (r *DefaultRegistry) Unregister(id benchmark.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.benchmarks, id)
	delete(r.definitions, id)
}

// Clear removes all benchmarks and definitions.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.benchmarks = make(
		map[benchmark.ID]benchmark.Benchmark,
	)
	r.definitions = make(
		map[benchmark.ID]*benchmark.Definition,
	)
}

// Count returns the number of registered benchmarks.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.benchmarks)
}
