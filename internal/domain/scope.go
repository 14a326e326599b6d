package domain

import "github.com/google/uuid"

// Scope is the resolved visibility predicate for one request. It is ephemeral
// and never persisted.
//
// Personal scope (TeamID nil) matches resources owned by the principal with no
// team assignment. Team scope matches resources assigned to the team, plus —
// when ProxyEmail is set — resources whose owner's email equals the proxy
// email regardless of assignment.
type Scope struct {
	PrincipalID uuid.UUID
	TeamID      *uuid.UUID
	ProxyEmail  *string
}

// IsTeam returns true when the scope targets a team.
func (s Scope) IsTeam() bool {
	return s.TeamID != nil
}

// Matches reports whether a non-deleted resource owned by a principal with
// ownerEmail is visible under the scope. The store applies the same predicate
// in SQL; this form exists for domain tests and in-memory checks.
func (s Scope) Matches(r *Resource, ownerEmail string) bool {
	if r.IsDeleted() {
		return false
	}
	if !s.IsTeam() {
		return r.OwnerID == s.PrincipalID && r.TeamID == nil
	}
	if r.TeamID != nil && *r.TeamID == *s.TeamID {
		return true
	}
	return r.TeamID == nil && s.ProxyEmail != nil && ownerEmail == *s.ProxyEmail
}
