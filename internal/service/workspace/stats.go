package workspace

import (
	"context"
	"fmt"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
	"github.com/stagedesk/stagedesk-backend/pkg/ctxutil"
)

// Stats computes a snapshot of the resources visible under a team scope:
// total, count per status and per kind, and optionally the stream sum and the
// top-N resources by streams.
//
// Every enum value appears in the group maps, zero-filled when the group is
// empty, and the total equals the sum of the status groups: both come from the
// same statement. Cross-grouping consistency is weaker; see
// domain.StatsSnapshot. Without a team context the snapshot is all zeros and
// the table is never scanned.
func (s *Service) Stats(ctx context.Context, input StatsInput) (*domain.StatsSnapshot, error) {
	principalID, ok := ctxutil.PrincipalIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	snap := domain.EmptyStatsSnapshot()

	if input.TeamID == nil {
		return &snap, nil
	}

	scope, err := s.scopes.Resolve(ctx, principalID, input.TeamID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.stats.CountByStatus(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	for status, count := range byStatus {
		snap.ByStatus[status] = count
		snap.Total += count
	}

	byKind, err := s.stats.CountByKind(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count by kind: %w", err)
	}
	for kind, count := range byKind {
		snap.ByKind[kind] = count
	}

	if input.WithStreamsTotal {
		sum, err := s.stats.SumStreams(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("sum streams: %w", err)
		}
		snap.StreamsTotal = sum
	}

	if input.TopN > 0 {
		top, err := s.stats.TopByStreams(ctx, scope, input.TopN)
		if err != nil {
			return nil, fmt.Errorf("top by streams: %w", err)
		}
		snap.Top = top
	}

	return &snap, nil
}
