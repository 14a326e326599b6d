package workspace

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// --- hand-rolled mocks ---

type resourceRepoMock struct {
	QueryFunc            func(ctx context.Context, scope domain.Scope, filter domain.ResourceFilter) ([]domain.Resource, int, error)
	GetByIDFunc          func(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error)
	GetByIDForUpdateFunc func(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error)
	AssignTeamFunc       func(ctx context.Context, id, ownerID, teamID uuid.UUID) (int64, error)
	SetStatusFunc        func(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) (int64, error)
	SoftDeleteFunc       func(ctx context.Context, id uuid.UUID) (int64, error)
	RestoreFunc          func(ctx context.Context, scope domain.Scope, id uuid.UUID) (int64, error)

	assignTeamCalls   int
	setStatusCalls    int
	softDeleteCalls   int
	getForUpdateCalls int

	restoreScopes []domain.Scope
}

func (m *resourceRepoMock) Query(ctx context.Context, scope domain.Scope, filter domain.ResourceFilter) ([]domain.Resource, int, error) {
	return m.QueryFunc(ctx, scope, filter)
}

func (m *resourceRepoMock) GetByID(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error) {
	return m.GetByIDFunc(ctx, scope, id)
}

func (m *resourceRepoMock) GetByIDForUpdate(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error) {
	m.getForUpdateCalls++
	return m.GetByIDForUpdateFunc(ctx, scope, id)
}

func (m *resourceRepoMock) AssignTeam(ctx context.Context, id, ownerID, teamID uuid.UUID) (int64, error) {
	m.assignTeamCalls++
	return m.AssignTeamFunc(ctx, id, ownerID, teamID)
}

func (m *resourceRepoMock) SetStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) (int64, error) {
	m.setStatusCalls++
	return m.SetStatusFunc(ctx, id, status)
}

func (m *resourceRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	m.softDeleteCalls++
	return m.SoftDeleteFunc(ctx, id)
}

func (m *resourceRepoMock) Restore(ctx context.Context, scope domain.Scope, id uuid.UUID) (int64, error) {
	m.restoreScopes = append(m.restoreScopes, scope)
	return m.RestoreFunc(ctx, scope, id)
}

type scopeResolverMock struct {
	ResolveFunc func(ctx context.Context, principalID uuid.UUID, teamID *uuid.UUID) (domain.Scope, error)
}

func (m *scopeResolverMock) Resolve(ctx context.Context, principalID uuid.UUID, teamID *uuid.UUID) (domain.Scope, error) {
	return m.ResolveFunc(ctx, principalID, teamID)
}

type teamGetterMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Team, error)
}

func (m *teamGetterMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	return m.GetByIDFunc(ctx, id)
}

type membershipMock struct {
	IsAuthorizedFunc func(ctx context.Context, principalID, teamID uuid.UUID) (bool, error)
}

func (m *membershipMock) IsAuthorized(ctx context.Context, principalID, teamID uuid.UUID) (bool, error) {
	return m.IsAuthorizedFunc(ctx, principalID, teamID)
}

type auditLoggerMock struct {
	LogFunc            func(ctx context.Context, draft domain.AuditEntry) error
	ListByResourceFunc func(ctx context.Context, resourceID uuid.UUID, limit int) ([]domain.AuditEntry, error)
	ListByActorFunc    func(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error)

	logged []domain.AuditEntry
}

func (m *auditLoggerMock) Log(ctx context.Context, draft domain.AuditEntry) error {
	m.logged = append(m.logged, draft)
	if m.LogFunc != nil {
		return m.LogFunc(ctx, draft)
	}
	return nil
}

func (m *auditLoggerMock) ListByResource(ctx context.Context, resourceID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	return m.ListByResourceFunc(ctx, resourceID, limit)
}

func (m *auditLoggerMock) ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error) {
	return m.ListByActorFunc(ctx, actorID, limit, offset)
}

type statsRepoMock struct {
	CountByStatusFunc func(ctx context.Context, scope domain.Scope) (map[domain.ResourceStatus]int, error)
	CountByKindFunc   func(ctx context.Context, scope domain.Scope) (map[domain.ResourceKind]int, error)
	SumStreamsFunc    func(ctx context.Context, scope domain.Scope) (int64, error)
	TopByStreamsFunc  func(ctx context.Context, scope domain.Scope, n int) ([]domain.Resource, error)

	sumStreamsCalls   int
	topByStreamsCalls int
}

func (m *statsRepoMock) CountByStatus(ctx context.Context, scope domain.Scope) (map[domain.ResourceStatus]int, error) {
	return m.CountByStatusFunc(ctx, scope)
}

func (m *statsRepoMock) CountByKind(ctx context.Context, scope domain.Scope) (map[domain.ResourceKind]int, error) {
	return m.CountByKindFunc(ctx, scope)
}

func (m *statsRepoMock) SumStreams(ctx context.Context, scope domain.Scope) (int64, error) {
	m.sumStreamsCalls++
	return m.SumStreamsFunc(ctx, scope)
}

func (m *statsRepoMock) TopByStreams(ctx context.Context, scope domain.Scope, n int) ([]domain.Resource, error) {
	m.topByStreamsCalls++
	return m.TopByStreamsFunc(ctx, scope, n)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return m.RunInTxFunc(ctx, fn)
}

type notifierMock struct {
	ResourceMutatedFunc func(ctx context.Context, event MutationEvent) error

	events []MutationEvent
}

func (m *notifierMock) ResourceMutated(ctx context.Context, event MutationEvent) error {
	m.events = append(m.events, event)
	if m.ResourceMutatedFunc != nil {
		return m.ResourceMutatedFunc(ctx, event)
	}
	return nil
}

// --- defaults ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// defaultTxMock runs the callback on the caller's context, the way the real
// manager does once a querier is bound.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func defaultScopeMock() *scopeResolverMock {
	return &scopeResolverMock{
		ResolveFunc: func(_ context.Context, principalID uuid.UUID, teamID *uuid.UUID) (domain.Scope, error) {
			return domain.Scope{PrincipalID: principalID, TeamID: teamID}, nil
		},
	}
}
