// Package team implements team and membership lookups using PostgreSQL.
// It is the default implementation of the membership provider the scope
// resolver and the workspace service consult; deployments may substitute an
// external authorization service.
package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres"
	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// Repo provides team persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new team repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getByIDSQL = `
SELECT id, name, proxy_email, created_at
FROM teams
WHERE id = $1`

// GetByID returns a team by primary key.
// Returns domain.ErrNotFound if the team does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var team domain.Team
	err := q.QueryRow(ctx, getByIDSQL, id).
		Scan(&team.ID, &team.Name, &team.ProxyEmail, &team.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "team", id)
	}

	return &team, nil
}

const isMemberSQL = `
SELECT EXISTS (
  SELECT 1 FROM team_members WHERE team_id = $1 AND principal_id = $2
)`

// IsAuthorized reports whether the principal has standing on the team.
// Satisfies the scope resolver's and workspace service's membership interface.
func (r *Repo) IsAuthorized(ctx context.Context, principalID, teamID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ok bool
	if err := q.QueryRow(ctx, isMemberSQL, teamID, principalID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}

	return ok, nil
}

const addMemberSQL = `
INSERT INTO team_members (team_id, principal_id)
VALUES ($1, $2)
ON CONFLICT (team_id, principal_id) DO NOTHING`

// AddMember grants a principal standing on a team. Idempotent.
func (r *Repo) AddMember(ctx context.Context, teamID, principalID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, addMemberSQL, teamID, principalID); err != nil {
		return postgres.MapError(err, "team_member", teamID)
	}

	return nil
}
