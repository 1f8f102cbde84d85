package validate

import (
	"math"
	"testing"
)

func TestDuration(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name        string
		value       *float64
		expectError bool
	}{
		{"valid", f(1800), false},
		{"valid small", f(1), false},
		{"missing", nil, true},
		{"zero", f(0), true},
		{"negative", f(-5), true},
		{"nan", f(math.NaN()), true},
		{"positive infinity", f(math.Inf(1)), true},
		{"negative infinity", f(math.Inf(-1)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Duration(tc.value)
			if tc.expectError && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.expectError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
