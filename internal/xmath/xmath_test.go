package xmath

import "testing"

func TestAbs(t *testing.T) {
	if got := Abs(-7); got != 7 {
		t.Fatalf("Abs(-7): got %d want 7", got)
	}
	if got := Abs(int8(5)); got != 5 {
		t.Fatalf("Abs(5): got %d want 5", got)
	}
}

func TestMinMaxClamp(t *testing.T) {
	if Min(3, -2) != -2 || Max(3, -2) != 3 {
		t.Fatalf("Min/Max mismatch")
	}
	if got := Clamp(12, 0, 10); got != 10 {
		t.Fatalf("Clamp high: got %d want 10", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("Clamp low: got %d want 0", got)
	}
	if got := Clamp(4, 0, 10); got != 4 {
		t.Fatalf("Clamp inside: got %d want 4", got)
	}
}
