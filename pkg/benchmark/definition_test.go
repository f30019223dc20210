package benchmark

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"digital.vasic.benchmarks/pkg/assertion"
)

func validDefinition() Definition {
	return Definition{
		ID:          "write-throughput",
		Name:        "Write throughput",
		Description: "Measures sustained write rate",
		Category:    "storage",
		Trials:      5,
		Warmup:      1,
		Counters:    []string{"writes", "errors"},
		Assertions: []string{
			"rate(writes) >= 1500",
			"total(errors) <= 10",
		},
		Metadata: map[string]string{"owner": "storage-team"},
	}
}

func TestDefinition_Validate_Valid(t *testing.T) {
	assert.NoError(t, validDefinition().Validate())
}

func TestDefinition_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{
			name:    "empty id",
			mutate:  func(d *Definition) { d.ID = "" },
			wantErr: "id must not be empty",
		},
		{
			name:    "empty name",
			mutate:  func(d *Definition) { d.Name = "" },
			wantErr: "name must not be empty",
		},
		{
			name:    "negative trials",
			mutate:  func(d *Definition) { d.Trials = -1 },
			wantErr: "negative trials",
		},
		{
			name: "duplicate counters",
			mutate: func(d *Definition) {
				d.Counters = []string{"writes", "writes"}
			},
			wantErr: "duplicate counter name",
		},
		{
			name: "unparseable assertion",
			mutate: func(d *Definition) {
				d.Assertions = []string{"writes go fast"}
			},
			wantErr: "cannot parse",
		},
		{
			name: "assertion on undeclared counter",
			mutate: func(d *Definition) {
				d.Assertions = []string{"rate(reads) > 100"}
			},
			wantErr: "no matching measurement declaration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(&d)

			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefinition_Declarations_PreservesOrder(t *testing.T) {
	decls := validDefinition().Declarations()

	require.Len(t, decls, 2)
	assert.Equal(t, "writes", decls[0].CounterName)
	assert.Equal(t, "errors", decls[1].CounterName)
}

func TestDefinition_Specs(t *testing.T) {
	specs, err := validDefinition().Specs()

	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, assertion.KindThroughput, specs[0].Kind)
	assert.Equal(t, assertion.KindTotal, specs[1].Kind)
}

func TestDefinition_JSONRoundTrip(t *testing.T) {
	original := validDefinition()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Definition
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestDefinition_YAMLDecode(t *testing.T) {
	src := `
id: read-latency
name: Read latency
category: storage
trials: 5
warmup: 1
counters:
  - reads
assertions:
  - "rate(reads) >= 2000"
  - "total(reads) between 1000 100000"
`
	var d Definition
	require.NoError(t, yaml.Unmarshal([]byte(src), &d))

	assert.Equal(t, ID("read-latency"), d.ID)
	assert.Equal(t, 5, d.Trials)
	require.Len(t, d.Assertions, 2)
	assert.NoError(t, d.Validate())
}
