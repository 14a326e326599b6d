// Package scope resolves the effective visibility scope for a principal,
// optionally widened to a team. The resolver only constructs the predicate —
// it never authorizes membership itself (that is delegated) and performs no
// writes, so resolution is a pure function of its inputs and the team's
// current proxy email.
package scope

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

type teamGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
}

type membershipProvider interface {
	IsAuthorized(ctx context.Context, principalID, teamID uuid.UUID) (bool, error)
}

// Resolver computes visibility scopes.
type Resolver struct {
	teams      teamGetter
	membership membershipProvider
}

// NewResolver creates a new scope resolver.
func NewResolver(teams teamGetter, membership membershipProvider) *Resolver {
	return &Resolver{teams: teams, membership: membership}
}

// Resolve computes the scope for a principal. With teamID nil the scope is
// personal: resources owned by the principal with no team assignment. With a
// teamID the team must exist (domain.ErrNotFound otherwise) and the principal
// must have standing on it (domain.ErrUnauthorized otherwise); the resolved
// scope carries the team's proxy email, if any, for implicit widening.
//
// A team with no proxy email and no resources resolves to a valid,
// empty-result scope — never an error.
func (r *Resolver) Resolve(ctx context.Context, principalID uuid.UUID, teamID *uuid.UUID) (domain.Scope, error) {
	if teamID == nil {
		return domain.Scope{PrincipalID: principalID}, nil
	}

	team, err := r.teams.GetByID(ctx, *teamID)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("resolve scope: %w", err)
	}

	ok, err := r.membership.IsAuthorized(ctx, principalID, team.ID)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("resolve scope: %w", err)
	}
	if !ok {
		return domain.Scope{}, fmt.Errorf("principal %s on team %s: %w", principalID, team.ID, domain.ErrUnauthorized)
	}

	return domain.Scope{
		PrincipalID: principalID,
		TeamID:      &team.ID,
		ProxyEmail:  team.ProxyEmail,
	}, nil
}
