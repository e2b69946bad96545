package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashSecret_SaltedPerCall(t *testing.T) {
	h1, err := HashSecret("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	h2, err := HashSecret("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same secret must differ (per-call salt)")
	}
	if h1 == "s3cret!" || h2 == "s3cret!" {
		t.Error("hash must not equal the plaintext secret")
	}
}

func TestVerifySecret(t *testing.T) {
	hash, err := HashSecret("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}

	if !VerifySecret(hash, "s3cret!") {
		t.Error("correct secret must verify")
	}
	if VerifySecret(hash, "wrong") {
		t.Error("wrong secret must not verify")
	}
	if VerifySecret("not-a-bcrypt-hash", "s3cret!") {
		t.Error("malformed hash must not verify")
	}
}
