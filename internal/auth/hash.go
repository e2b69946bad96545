package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash of an unused value. Login compares against
// it when the username does not exist, so the unknown-user path costs roughly
// the same as a real verification.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashSecret returns the bcrypt hash of the secret at the given cost.
// bcrypt embeds a random per-call salt in the output, so hashing the same
// secret twice yields different strings. Pass bcrypt.DefaultCost outside of tests.
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret reports whether secret matches the stored bcrypt hash.
func VerifySecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
