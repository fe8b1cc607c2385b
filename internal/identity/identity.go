package identity

import (
	"net/http"
	"strings"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// HeaderUserID is the trusted header the authenticating proxy sets on every
// forwarded request
const HeaderUserID = "X-User-ID"

// Resolver extracts the acting user from an incoming request
type Resolver interface {
	// Resolve returns the user ID for the request, or
	// domain.ErrIdentityUnavailable when no user context is present
	Resolve(r *http.Request) (string, error)
}

// HeaderResolver resolves the user from the X-User-ID header. Session
// exchange happens upstream; this service trusts the proxy's header.
type HeaderResolver struct {
	header string
}

// NewHeaderResolver creates a resolver reading the default header
func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{header: HeaderUserID}
}

func (h *HeaderResolver) Resolve(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get(h.header))
	if userID == "" {
		return "", domain.ErrIdentityUnavailable
	}
	return userID, nil
}
