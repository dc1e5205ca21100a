package rotation

import (
	"testing"

	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
)

func TestParseOrder(t *testing.T) {
	cases := []struct {
		input   string
		want    Order
		wantErr bool
	}{
		{"sequential", OrderSequential, false},
		{"random", OrderRandom, false},
		{"Random", OrderRandom, false},
		{" sequential ", OrderSequential, false},
		{"shuffled", OrderSequential, true},
		{"", OrderSequential, true},
	}

	for _, tc := range cases {
		got, err := ParseOrder(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOrder(%q): expected error", tc.input)
			} else if !apperrors.IsCategory(err, apperrors.CategoryOrder) {
				t.Errorf("ParseOrder(%q): expected order category, got %v", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOrder(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOrder(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeOrderFallsBack(t *testing.T) {
	if NormalizeOrder("shuffle") != OrderSequential {
		t.Error("unknown order should normalize to sequential")
	}
	if NormalizeOrder("RANDOM") != OrderRandom {
		t.Error("case should not matter")
	}
}
