package crypto

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher("pepper123")

	digest, err := h.Hash("longpassw0rd")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(digest, "$2a$") {
		t.Errorf("expected bcrypt digest, got %q", digest)
	}

	ok, err := h.Verify("longpassw0rd", digest)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Error("expected digest to verify against original password")
	}

	ok, err = h.Verify("wrongpass", digest)
	if err != nil {
		t.Fatalf("Verify returned error on mismatch: %v", err)
	}
	if ok {
		t.Error("expected mismatching password to fail verification")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	h := NewHasher("pepper123")

	d1, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	d2, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if d1 == d2 {
		t.Error("expected distinct digests for the same password")
	}

	for _, d := range []string{d1, d2} {
		ok, err := h.Verify("samepassword", d)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if !ok {
			t.Errorf("expected password to verify against digest %q", d)
		}
	}
}

func TestVerify_DifferentPepper(t *testing.T) {
	digest, err := NewHasher("part1part2part3").Hash("longpassw0rd")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := NewHasher("part1part2CHANGED").Verify("longpassw0rd", digest)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Error("expected verification to fail with a different pepper")
	}
}

func TestEmptyInputs(t *testing.T) {
	h := NewHasher("pepper")

	if _, err := h.Hash(""); err != ErrEmptyInput {
		t.Errorf("Hash(\"\") error = %v; want ErrEmptyInput", err)
	}
	if _, err := h.Verify("", "digest"); err != ErrEmptyInput {
		t.Errorf("Verify with empty password error = %v; want ErrEmptyInput", err)
	}
	if _, err := h.Verify("password", ""); err != ErrEmptyInput {
		t.Errorf("Verify with empty digest error = %v; want ErrEmptyInput", err)
	}
}
