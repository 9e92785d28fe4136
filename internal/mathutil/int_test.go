package mathutil

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		x, lo, hi int
		want      int
	}{
		{"inside", 50, 0, 100, 50},
		{"below", -7, 0, 100, 0},
		{"above", 10000, 0, 100, 100},
		{"inverted bounds", 5, 10, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.x, tc.lo, tc.hi); got != tc.want {
				t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tc.x, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestManhattan(t *testing.T) {
	if got := Manhattan(0, 0, 2, -3); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := Manhattan(4, 4, 4, 4); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
