package passwords

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	if err := h.Compare(hash, "secret123"); err != nil {
		t.Fatalf("Compare: %v", err)
	}
}

func TestHasher_CompareWrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, _ := h.Hash("secret123")
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestHasher_CostClamped(t *testing.T) {
	if h := NewHasher(0); h.Cost != DefaultCost {
		t.Errorf("zero cost: got %d, want %d", h.Cost, DefaultCost)
	}
	if h := NewHasher(2); h.Cost < bcrypt.MinCost {
		t.Errorf("cost below MinCost not clamped: %d", h.Cost)
	}
	if h := NewHasher(40); h.Cost > bcrypt.MaxCost {
		t.Errorf("cost above MaxCost not clamped: %d", h.Cost)
	}
}

func TestDummyHash_NeverMatches(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	for _, pw := range []string{"", "password", "secret123"} {
		if err := h.Compare(DummyHash, pw); err == nil {
			t.Errorf("DummyHash matched %q", pw)
		}
	}
}
