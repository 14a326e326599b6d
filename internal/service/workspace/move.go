package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
	"github.com/stagedesk/stagedesk-backend/pkg/ctxutil"
)

// MoveToTeam moves a personal-scoped resource into a team as one atomic unit:
// the team assignment and the MOVED_TO_TEAM audit entry commit together or
// not at all. Preconditions are re-checked inside the transaction by the
// conditional update, so of N concurrent moves on the same resource exactly
// one succeeds and the rest fail with domain.ErrPreconditionFailed.
//
// The destination team must exist and the actor must have standing on it.
func (s *Service) MoveToTeam(ctx context.Context, input MoveToTeamInput) (*domain.Resource, error) {
	actorID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, input.ToTeamID)
	if err != nil {
		return nil, fmt.Errorf("destination team: %w", err)
	}

	authorized, err := s.members.IsAuthorized(ctx, actorID, team.ID)
	if err != nil {
		return nil, fmt.Errorf("check standing: %w", err)
	}
	if !authorized {
		return nil, fmt.Errorf("actor %s on team %s: %w", actorID, team.ID, domain.ErrUnauthorized)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		affected, assignErr := s.resources.AssignTeam(txCtx, input.ResourceID, input.FromPrincipalID, team.ID)
		if assignErr != nil {
			return fmt.Errorf("assign team: %w", assignErr)
		}
		if affected == 0 {
			return fmt.Errorf("resource %s not found or already associated with a team: %w",
				input.ResourceID, domain.ErrPreconditionFailed)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditEntry{
			ResourceID: input.ResourceID,
			EventType:  domain.AuditEventMovedToTeam,
			ActorID:    actorID,
			Payload: map[string]any{
				domain.AuditKeyMovedBy:      actorID.String(),
				domain.AuditKeyFromPersonal: true,
				domain.AuditKeyToTeamID:     team.ID.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitMutation(ctx, MutationEvent{
		ResourceID: input.ResourceID,
		EventType:  domain.AuditEventMovedToTeam,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})

	s.log.InfoContext(ctx, "resource moved to team",
		slog.String("resource_id", input.ResourceID.String()),
		slog.String("team_id", team.ID.String()),
		slog.String("actor_id", actorID.String()),
	)

	// Read back under the destination team's scope.
	teamID := team.ID
	moved, err := s.resources.GetByID(ctx, domain.Scope{
		PrincipalID: actorID,
		TeamID:      &teamID,
		ProxyEmail:  team.ProxyEmail,
	}, input.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("reload moved resource: %w", err)
	}

	return moved, nil
}
