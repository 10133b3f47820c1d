package suggest_test

import (
	"fmt"
	"testing"

	"github.com/storborg/gologic/suggest"
)

func ExampleString() {
	input := "neg_edge"
	modes := []string{"high", "low", "negedge", "posedge"}

	fmt.Printf("Did you mean %q?", suggest.String(input, modes))
	// Output: Did you mean "negedge"?
}

func TestString(t *testing.T) {
	modes := []string{"high", "low", "negedge", "posedge"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Exact", "high", "high"},
		{"OneOff", "hig", "high"},
		{"EdgeTypo", "posedg", "posedge"},
		{"NoMatch", "x", ""},
		{"FarOff", "falling", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggest.String(tt.input, modes)
			if got != tt.want {
				t.Errorf("String(%q) = %q, want = %q", tt.input, got, tt.want)
			}
		})
	}
}
