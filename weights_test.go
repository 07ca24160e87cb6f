package allocation

import (
	"slices"
	"strings"
	"testing"
)

func TestParseWeights(t *testing.T) {
	symbols := []string{"AAA", "BBB", "CCC"}
	tests := []struct {
		input   string
		want    []float64
		wantErr string
	}{
		{"AAA=0.5,BBB=0.5", []float64{0.5, 0.5, 0}, ""},
		{" CCC = 1 ", []float64{0, 0, 1}, ""},
		{"AAA=0.2,BBB=0.3,CCC=0.5,", []float64{0.2, 0.3, 0.5}, ""},
		{"AAA=0.5", nil, "sum to"},
		{"AAA", nil, "<symbol>=<weight>"},
		{"DDD=1", nil, "not held"},
		{"AAA=0.5,AAA=0.5", nil, "twice"},
		{"AAA=-0.5,BBB=1.5", nil, "non negative"},
		{"AAA=half,BBB=0.5", nil, "non negative"},
		{"", nil, "sum to"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeights(tt.input, symbols)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseWeights(%q) error = %v, want it to contain %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeights(%q) error = %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseWeights(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
