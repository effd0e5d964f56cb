package domain

import (
	"slices"
	"time"
)

// Application roles carried in access tokens.
const (
	RoleCoordinator = "coordinator"
	RoleFinance     = "finance"
)

// Principal is the authenticated caller.
type Principal struct {
	Subject string
	Email   string
	Roles   []string
}

func (p *Principal) HasRole(role string) bool {
	return p != nil && slices.Contains(p.Roles, role)
}

// TokenIssuer issues tokens (e.g. JWT) for a principal.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}
