package logging

import (
	"fmt"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// kvAdapter adapts a structured Logger to the benchmark.Logger
// interface, which takes alternating key-value arguments.
type kvAdapter struct {
	inner Logger
}

// ForBenchmark wraps a structured Logger so it satisfies the
// benchmark.Logger interface used by the runner and benchmarks.
func ForBenchmark(l Logger) benchmark.Logger {
	return &kvAdapter{inner: l}
}

// pairFields converts alternating key-value arguments into Fields.
// A trailing key without a value keeps the key with a nil value.
func pairFields(args []any) []Field {
	fields := make([]Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields
}

func (a *kvAdapter) Info(msg string, args ...any) {
	a.inner.Info(msg, pairFields(args)...)
}

func (a *kvAdapter) Warn(msg string, args ...any) {
	a.inner.Warn(msg, pairFields(args)...)
}

func (a *kvAdapter) Error(msg string, args ...any) {
	a.inner.Error(msg, pairFields(args)...)
}

func (a *kvAdapter) Debug(msg string, args ...any) {
	a.inner.Debug(msg, pairFields(args)...)
}

func (a *kvAdapter) Close() error {
	return a.inner.Close()
}
