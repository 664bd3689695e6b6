package project

import "testing"

func TestCombine(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))

	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatal("Combine must be deterministic")
	}
	if Combine(a) == a {
		t.Fatal("Combine without deps must still rehash")
	}
	if len(a.Hex()) != 64 || a.IsZero() || !(Digest{}).IsZero() {
		t.Fatalf("unexpected digest helpers: %s", a.Hex())
	}
}
