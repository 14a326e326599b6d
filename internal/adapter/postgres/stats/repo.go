// Package stats implements scope-level aggregation queries using PostgreSQL.
// Each metric is computed by a single statement, so each is one consistent
// snapshot even under concurrent inserts.
package stats

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/resource"
	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// psql builds queries with $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides aggregation reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new stats repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type statusCount struct {
	Status domain.ResourceStatus `db:"status"`
	Count  int                   `db:"count"`
}

type kindCount struct {
	Kind  domain.ResourceKind `db:"kind"`
	Count int                 `db:"count"`
}

// baseSelect returns a query over non-deleted resources visible under the scope.
func baseSelect(columns string, scope domain.Scope) squirrel.SelectBuilder {
	return psql.Select(columns).
		From("resources r").
		Join("principals p ON p.id = r.owner_id").
		Where(resource.ScopePredicate(scope)).
		Where(squirrel.Eq{"r.deleted_at": nil})
}

// CountByStatus returns the number of visible resources per status. Groups
// with no members are absent from the result; the service layer zero-fills.
// Count-per-group and the implied total come from one statement, so the
// total always equals the sum of the groups.
func (r *Repo) CountByStatus(ctx context.Context, scope domain.Scope) (map[domain.ResourceStatus]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := baseSelect("r.status AS status, count(*) AS count", scope).
		GroupBy("r.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build status count query: %w", err)
	}

	var rows []statusCount
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	result := make(map[domain.ResourceStatus]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}

	return result, nil
}

// CountByKind returns the number of visible resources per kind.
func (r *Repo) CountByKind(ctx context.Context, scope domain.Scope) (map[domain.ResourceKind]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := baseSelect("r.kind AS kind, count(*) AS count", scope).
		GroupBy("r.kind").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build kind count query: %w", err)
	}

	var rows []kindCount
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count by kind: %w", err)
	}

	result := make(map[domain.ResourceKind]int, len(rows))
	for _, row := range rows {
		result[row.Kind] = row.Count
	}

	return result, nil
}

// SumStreams returns the total stream count across visible resources.
func (r *Repo) SumStreams(ctx context.Context, scope domain.Scope) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := baseSelect("COALESCE(SUM(r.streams), 0)", scope).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum query: %w", err)
	}

	var sum int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum streams: %w", err)
	}

	return sum, nil
}

const topColumns = "r.id, r.kind, r.status, r.title, r.notes, r.streams, " +
	"r.owner_id, r.team_id, r.occurs_at, r.created_at, r.updated_at, r.deleted_at"

// TopByStreams returns the n visible resources with the most streams,
// ties broken by id ASC for determinism.
func (r *Repo) TopByStreams(ctx context.Context, scope domain.Scope, n int) ([]domain.Resource, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := baseSelect(topColumns, scope).
		OrderBy("r.streams DESC", "r.id ASC").
		Limit(uint64(n)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top query: %w", err)
	}

	var items []domain.Resource
	if err := pgxscan.Select(ctx, q, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("top by streams: %w", err)
	}

	if items == nil {
		items = []domain.Resource{}
	}

	return items, nil
}
