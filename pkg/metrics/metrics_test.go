package metrics

import (
	"testing"
	"time"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	// Must not panic.
	m.RecordRun("write-throughput", "passed", time.Second)
	m.RecordTrial("write-throughput", time.Second)
	m.RecordAssertion("write-throughput", "writes", true)
	m.SetActiveRuns(0)
}
