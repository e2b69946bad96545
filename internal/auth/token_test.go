package auth

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-signing-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	identity, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if identity != "alice" {
		t.Errorf("identity: got %q, want %q", identity, "alice")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = ParseToken(token, testSecret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got: %v", err)
	}
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = ParseToken(token, []byte("a-different-secret"))
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
}

// TestParseToken_Tampered flips every single character of a valid token in
// turn; each mutation must invalidate the signature or the structure.
func TestParseToken_Tampered(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	for i := 0; i < len(token); i++ {
		altered := 'x'
		if token[i] == 'x' {
			altered = 'y'
		}
		tampered := token[:i] + string(altered) + token[i+1:]

		_, err := ParseToken(tampered, testSecret)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("position %d: expected ErrInvalidToken, got: %v", i, err)
		}
	}
}

func TestParseToken_Malformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := ParseToken(tok, testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got: %v", tok, err)
		}
	}
}
