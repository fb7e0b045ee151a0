package utils

import "testing"

func TestHashTextDeterministic(t *testing.T) {
	a := HashText("rental sofa 2 unit RM150")
	b := HashText("rental sofa 2 unit RM150")
	if a != b {
		t.Fatalf("repeat hash mismatch: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashTextDistinct(t *testing.T) {
	if HashText("order A") == HashText("order B") {
		t.Error("distinct texts produced identical digests")
	}
}

func TestHashTextKnownValue(t *testing.T) {
	// sha256("") is a fixed constant; guards against accidental salting.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashText(""); got != want {
		t.Errorf("HashText(\"\") = %s, want %s", got, want)
	}
}
