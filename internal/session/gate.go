package session

import (
	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// GateOutcome is what a role gate decides to render for a snapshot.
type GateOutcome int

const (
	// GateLoading means the session state is not yet known; render a
	// placeholder, never the protected content and never the fallback.
	GateLoading GateOutcome = iota
	// GateContent means the user's role satisfies the requirement.
	GateContent
	// GateFallback means the user is anonymous or under-privileged.
	GateFallback
)

// String returns the outcome name for logs and test output.
func (o GateOutcome) String() string {
	switch o {
	case GateLoading:
		return "loading"
	case GateContent:
		return "content"
	case GateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Gate decides whether a session snapshot may see role-protected content.
// The zero value requires no particular role, admitting any signed-in user.
type Gate struct {
	Required domainauth.Role
}

// Decide maps a snapshot to an outcome. A loading snapshot always yields
// GateLoading; an unknown or missing role never satisfies any requirement.
func (g Gate) Decide(snap Snapshot) GateOutcome {
	if snap.Loading {
		return GateLoading
	}
	if snap.User == nil {
		return GateFallback
	}
	required := g.Required
	if required == "" {
		required = domainauth.RoleUser
	}
	if snap.User.Role.AtLeast(required) {
		return GateContent
	}
	return GateFallback
}
