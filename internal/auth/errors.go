package auth

import "errors"

// Sentinel errors returned by the Service. Handlers translate these to HTTP
// status codes; nothing else about a failure leaks to the client.
var (
	// ErrInvalidInput means a required field was missing or empty. Detected
	// before any hashing or storage work is done.
	ErrInvalidInput = errors.New("username and password required")

	// ErrUsernameTaken means registration hit an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable so login
	// responses cannot be used to enumerate registered usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken means the token is malformed or its signature does not
	// verify against the process signing key.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrStorageUnavailable wraps database failures. Handlers map it to 500;
	// it is never folded into a credential error.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
