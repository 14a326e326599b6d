// Package workspace is the use-case layer over the scoped resource store.
// Every state-changing operation runs its mutation and its audit append inside
// one transaction; no mutation is ever persisted without its audit entry.
package workspace

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

type resourceRepo interface {
	Query(ctx context.Context, scope domain.Scope, filter domain.ResourceFilter) ([]domain.Resource, int, error)
	GetByID(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error)
	GetByIDForUpdate(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error)
	AssignTeam(ctx context.Context, id, ownerID, teamID uuid.UUID) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
	Restore(ctx context.Context, scope domain.Scope, id uuid.UUID) (int64, error)
}

type scopeResolver interface {
	Resolve(ctx context.Context, principalID uuid.UUID, teamID *uuid.UUID) (domain.Scope, error)
}

type teamGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
}

type membershipProvider interface {
	IsAuthorized(ctx context.Context, principalID, teamID uuid.UUID) (bool, error)
}

type auditLogger interface {
	Log(ctx context.Context, draft domain.AuditEntry) error
	ListByResource(ctx context.Context, resourceID uuid.UUID, limit int) ([]domain.AuditEntry, error)
	ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error)
}

type statsRepo interface {
	CountByStatus(ctx context.Context, scope domain.Scope) (map[domain.ResourceStatus]int, error)
	CountByKind(ctx context.Context, scope domain.Scope) (map[domain.ResourceKind]int, error)
	SumStreams(ctx context.Context, scope domain.Scope) (int64, error)
	TopByStreams(ctx context.Context, scope domain.Scope, n int) ([]domain.Resource, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MutationEvent describes a committed mutation for the optional event sink.
type MutationEvent struct {
	ResourceID uuid.UUID
	EventType  domain.AuditEventType
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// notifier is the optional fire-and-forget event sink. Delivery failures are
// logged and swallowed; they never roll back or block the transaction.
type notifier interface {
	ResourceMutated(ctx context.Context, event MutationEvent) error
}

// Service provides scoped queries, audited mutations, and aggregations.
type Service struct {
	resources resourceRepo
	scopes    scopeResolver
	teams     teamGetter
	members   membershipProvider
	audit     auditLogger
	stats     statsRepo
	tx        txManager
	notify    notifier
	log       *slog.Logger
}

// NewService creates a new workspace service. notify may be nil.
func NewService(
	log *slog.Logger,
	resources resourceRepo,
	scopes scopeResolver,
	teams teamGetter,
	members membershipProvider,
	audit auditLogger,
	stats statsRepo,
	tx txManager,
	notify notifier,
) *Service {
	return &Service{
		resources: resources,
		scopes:    scopes,
		teams:     teams,
		members:   members,
		audit:     audit,
		stats:     stats,
		tx:        tx,
		notify:    notify,
		log:       log.With("service", "workspace"),
	}
}

// emitMutation delivers the post-commit event to the sink, if configured.
func (s *Service) emitMutation(ctx context.Context, event MutationEvent) {
	if s.notify == nil {
		return
	}
	if err := s.notify.ResourceMutated(ctx, event); err != nil {
		s.log.WarnContext(ctx, "mutation event delivery failed",
			slog.String("resource_id", event.ResourceID.String()),
			slog.String("event_type", event.EventType.String()),
			slog.String("error", err.Error()),
		)
	}
}
