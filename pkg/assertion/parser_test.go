package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecString_ValidSpecs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Spec
	}{
		{
			name:  "rate greater or equal",
			input: "rate(ops) >= 1500",
			expected: Spec{
				CounterName: "ops",
				Kind:        KindThroughput,
				Condition:   GreaterThanOrEqualTo,
				Threshold:   1500,
			},
		},
		{
			name:  "total less than",
			input: "total(errors) < 10",
			expected: Spec{
				CounterName: "errors",
				Kind:        KindTotal,
				Condition:   LessThan,
				Threshold:   10,
			},
		},
		{
			name:  "rate equal with decimal",
			input: "rate(ops) == 7.5",
			expected: Spec{
				CounterName: "ops",
				Kind:        KindThroughput,
				Condition:   Equal,
				Threshold:   7.5,
			},
		},
		{
			name:  "total between",
			input: "total(requests) between 400 700",
			expected: Spec{
				CounterName:  "requests",
				Kind:         KindTotal,
				Condition:    Between,
				Threshold:    400,
				MaxThreshold: f(700),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseSpecString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestParseSpecString_InvalidSpecs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty string",
			input:   "",
			wantErr: "cannot parse",
		},
		{
			name:    "missing selector parens",
			input:   "rate ops >= 100",
			wantErr: "cannot parse selector",
		},
		{
			name:    "unknown kind",
			input:   "latency(ops) >= 100",
			wantErr: "unknown kind",
		},
		{
			name:    "unknown operator",
			input:   "rate(ops) ~= 100",
			wantErr: "unknown operator",
		},
		{
			name:    "unparseable threshold",
			input:   "rate(ops) >= fast",
			wantErr: "cannot parse threshold",
		},
		{
			name:    "between missing upper bound",
			input:   "total(ops) between 400",
			wantErr: "lower and upper bounds",
		},
		{
			name:    "between inverted bounds",
			input:   "total(ops) between 700 400",
			wantErr: "must exceed",
		},
		{
			name:    "trailing input",
			input:   "rate(ops) >= 100 200",
			wantErr: "trailing input",
		},
		{
			name:    "negative threshold",
			input:   "rate(ops) >= -5",
			wantErr: "negative threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpecString(tt.input)

			var specErr *InvalidSpecError
			require.ErrorAs(t, err, &specErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseSpecStrings_PreservesOrder(t *testing.T) {
	specs, err := ParseSpecStrings([]string{
		"rate(ops) > 50",
		"total(ops) < 10",
	})

	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, KindThroughput, specs[0].Kind)
	assert.Equal(t, KindTotal, specs[1].Kind)
}

func TestParseSpecStrings_FailureCarriesIndex(t *testing.T) {
	_, err := ParseSpecStrings([]string{
		"rate(ops) > 50",
		"bogus",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion 1")
}
