package workspace

import (
	"context"
	"fmt"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
	"github.com/stagedesk/stagedesk-backend/pkg/ctxutil"
)

// Page is one page of a resource listing. Total counts the fully-filtered
// set before pagination.
type Page struct {
	Items []domain.Resource
	Total int
}

// Query lists resources visible to the authenticated principal, optionally
// within a team scope, applying the filter conjunctively.
func (s *Service) Query(ctx context.Context, input QueryInput) (*Page, error) {
	principalID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope, err := s.scopes.Resolve(ctx, principalID, input.TeamID)
	if err != nil {
		return nil, err
	}

	items, total, err := s.resources.Query(ctx, scope, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}

	return &Page{Items: items, Total: total}, nil
}

// Get returns one resource by id within the resolved scope. Absent and
// out-of-scope resources both surface domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, input GetInput) (*domain.Resource, error) {
	principalID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope, err := s.scopes.Resolve(ctx, principalID, input.TeamID)
	if err != nil {
		return nil, err
	}

	return s.resources.GetByID(ctx, scope, input.ResourceID)
}

// History returns the audit trail of a resource, newest entries first. The
// resource must be visible under the resolved scope.
func (s *Service) History(ctx context.Context, input GetInput, limit int) ([]domain.AuditEntry, error) {
	principalID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope, err := s.scopes.Resolve(ctx, principalID, input.TeamID)
	if err != nil {
		return nil, err
	}

	// Visibility gate: the trail is only readable if the resource itself is.
	if _, err := s.resources.GetByID(ctx, scope, input.ResourceID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	return s.audit.ListByResource(ctx, input.ResourceID, limit)
}

// ActorHistory returns the audit entries recorded for the authenticated
// principal's own actions.
func (s *Service) ActorHistory(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	principalID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.audit.ListByActor(ctx, principalID, limit, offset)
}
