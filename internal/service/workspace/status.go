package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
	"github.com/stagedesk/stagedesk-backend/pkg/ctxutil"
)

// SetStatus transitions a resource's lifecycle status, following the same
// atomic mutate+audit contract as MoveToTeam. The old status is captured
// inside the transaction for an accurate audit diff.
func (s *Service) SetStatus(ctx context.Context, input SetStatusInput) (*domain.Resource, error) {
	actorID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope, err := s.scopes.Resolve(ctx, actorID, input.TeamID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Resource
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Locking read: a racing status change cannot slip in between this
		// read and the update, so the audited old status is exact.
		current, getErr := s.resources.GetByIDForUpdate(txCtx, scope, input.ResourceID)
		if getErr != nil {
			return getErr
		}

		if current.Status == input.Status {
			// No-op transition: nothing to mutate, nothing to audit.
			updated = current
			return nil
		}

		affected, setErr := s.resources.SetStatus(txCtx, input.ResourceID, input.Status)
		if setErr != nil {
			return fmt.Errorf("set status: %w", setErr)
		}
		if affected == 0 {
			return fmt.Errorf("resource %s: %w", input.ResourceID, domain.ErrPreconditionFailed)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditEntry{
			ResourceID: input.ResourceID,
			EventType:  domain.AuditEventStatusChanged,
			ActorID:    actorID,
			Payload: map[string]any{
				domain.AuditKeyOldStatus: current.Status.String(),
				domain.AuditKeyNewStatus: input.Status.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		next := *current
		next.Status = input.Status
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitMutation(ctx, MutationEvent{
		ResourceID: input.ResourceID,
		EventType:  domain.AuditEventStatusChanged,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})

	s.log.InfoContext(ctx, "resource status changed",
		slog.String("resource_id", input.ResourceID.String()),
		slog.String("status", input.Status.String()),
		slog.String("actor_id", actorID.String()),
	)

	return updated, nil
}

// Delete soft-deletes a resource visible under the resolved scope, with a
// SOFT_DELETED audit entry in the same transaction. Physical removal is left
// to the external retention process.
func (s *Service) Delete(ctx context.Context, input DeleteInput) error {
	actorID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	scope, err := s.scopes.Resolve(ctx, actorID, input.TeamID)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, getErr := s.resources.GetByID(txCtx, scope, input.ResourceID); getErr != nil {
			return getErr
		}

		affected, delErr := s.resources.SoftDelete(txCtx, input.ResourceID)
		if delErr != nil {
			return fmt.Errorf("soft delete: %w", delErr)
		}
		if affected == 0 {
			return fmt.Errorf("resource %s: %w", input.ResourceID, domain.ErrPreconditionFailed)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditEntry{
			ResourceID: input.ResourceID,
			EventType:  domain.AuditEventSoftDeleted,
			ActorID:    actorID,
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.emitMutation(ctx, MutationEvent{
		ResourceID: input.ResourceID,
		EventType:  domain.AuditEventSoftDeleted,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})

	s.log.InfoContext(ctx, "resource soft-deleted",
		slog.String("resource_id", input.ResourceID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return nil
}

// Restore clears a resource's soft-delete mark, with a RESTORED audit entry
// in the same transaction.
func (s *Service) Restore(ctx context.Context, input DeleteInput) error {
	actorID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	scope, err := s.scopes.Resolve(ctx, actorID, input.TeamID)
	if err != nil {
		return err
	}

	// The resource is invisible to normal scoped reads while deleted, so the
	// scope check and the precondition live in the conditional update itself.
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		affected, resErr := s.resources.Restore(txCtx, scope, input.ResourceID)
		if resErr != nil {
			return fmt.Errorf("restore: %w", resErr)
		}
		if affected == 0 {
			return fmt.Errorf("resource %s: %w", input.ResourceID, domain.ErrPreconditionFailed)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditEntry{
			ResourceID: input.ResourceID,
			EventType:  domain.AuditEventRestored,
			ActorID:    actorID,
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "resource restored",
		slog.String("resource_id", input.ResourceID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return nil
}
