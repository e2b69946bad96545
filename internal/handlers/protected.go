package handlers

import (
	"fmt"
	"net/http"

	"github.com/crucial707/authgate/internal/middleware"
)

// ==========================
// Protected resource (requires a valid access token)
// ==========================
type ProtectedHandler struct{}

// Get greets the authenticated identity. The JWT middleware has already
// validated the token and stored the identity in the request context.
func (h *ProtectedHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		// Only reachable if the route was wired without the JWT middleware.
		JSONError(w, "missing authorization", http.StatusUnauthorized)
		return
	}

	JSON(w, map[string]string{
		"message":  fmt.Sprintf("welcome %s! this is a protected route.", identity),
		"identity": identity,
	}, http.StatusOK)
}
