// Package resource implements the generic resource store using PostgreSQL.
// One repository serves every resource kind (documents, contracts, releases,
// tasks, songs, events); visibility is enforced by a scope predicate applied
// uniformly to every query, and soft-deleted rows are excluded in one place
// rather than per call site.
package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres"
	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// psql builds queries with $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const resourceColumns = "r.id, r.kind, r.status, r.title, r.notes, r.streams, " +
	"r.owner_id, r.team_id, r.occurs_at, r.created_at, r.updated_at, r.deleted_at"

// Repo provides resource persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new resource repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Predicate construction
// ---------------------------------------------------------------------------

// ScopePredicate translates a resolved scope into a SQL predicate.
//
// Personal scope: owner matches and no team assignment.
// Team scope: assigned to the team, or — when the team has a proxy email —
// unassigned and owned by a principal with that email. A resource assigned to
// a different team never matches via proxy email.
func ScopePredicate(scope domain.Scope) squirrel.Sqlizer {
	if !scope.IsTeam() {
		return squirrel.And{
			squirrel.Eq{"r.owner_id": scope.PrincipalID},
			squirrel.Eq{"r.team_id": nil},
		}
	}

	if scope.ProxyEmail != nil {
		return squirrel.Or{
			squirrel.Eq{"r.team_id": *scope.TeamID},
			squirrel.And{
				squirrel.Eq{"r.team_id": nil},
				squirrel.Eq{"p.email": *scope.ProxyEmail},
			},
		}
	}

	return squirrel.Eq{"r.team_id": *scope.TeamID}
}

// filterPredicates returns the conjunctive filter predicates in composition
// order: related artists, period window, free-text search, kind, status.
func filterPredicates(f domain.ResourceFilter, now time.Time) []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer

	if !f.IncludeDeleted {
		preds = append(preds, squirrel.Eq{"r.deleted_at": nil})
	}

	if len(f.ArtistIDs) > 0 {
		preds = append(preds, squirrel.Expr(
			"EXISTS (SELECT 1 FROM resource_artists ra WHERE ra.resource_id = r.id AND ra.artist_id = ANY(?))",
			f.ArtistIDs,
		))
	}

	if f.Period != nil && f.Period.IsValid() {
		cutoff := now.AddDate(0, 0, -f.Period.Days())
		preds = append(preds, squirrel.GtOrEq{"r.created_at": cutoff})
	}

	if f.Search != nil && *f.Search != "" {
		like := "%" + escapeLike(*f.Search) + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"r.title": like},
			squirrel.ILike{"r.notes": like},
		})
	}

	if f.Kind != nil {
		preds = append(preds, squirrel.Eq{"r.kind": *f.Kind})
	}

	if f.Status != nil {
		preds = append(preds, squirrel.Eq{"r.status": *f.Status})
	}

	return preds
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Query returns the page of resources visible under the scope that match the
// filter, plus the total count of the fully-filtered set before pagination.
// Ties on the sort column are broken by id ASC so pagination is stable.
func (r *Repo) Query(ctx context.Context, scope domain.Scope, filter domain.ResourceFilter) ([]domain.Resource, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	filter = normalizeFilter(filter)
	now := time.Now().UTC()

	preds := append([]squirrel.Sqlizer{ScopePredicate(scope)}, filterPredicates(filter, now)...)

	countQuery := psql.Select("count(*)").
		From("resources r").
		Join("principals p ON p.id = r.owner_id")
	for _, pred := range preds {
		countQuery = countQuery.Where(pred)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "resource", uuid.Nil)
	}

	pageQuery := psql.Select(resourceColumns).
		From("resources r").
		Join("principals p ON p.id = r.owner_id")
	for _, pred := range preds {
		pageQuery = pageQuery.Where(pred)
	}
	pageQuery = pageQuery.
		OrderBy(fmt.Sprintf("r.%s %s", filter.SortBy, filter.SortOrder), "r.id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	sql, args, err = pageQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build page query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "resource", uuid.Nil)
	}
	defer rows.Close()

	items, err := scanResources(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan resources: %w", err)
	}

	return items, total, nil
}

// GetByID returns a single resource by id if it is visible under the scope and
// not soft-deleted. Absent and out-of-scope resources are indistinguishable:
// both return domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error) {
	return r.getByID(ctx, scope, id, false)
}

// GetByIDForUpdate is GetByID with a row lock on the resource. Callers reading
// a value they are about to change inside a transaction use this so the read
// cannot go stale between the SELECT and the UPDATE.
func (r *Repo) GetByIDForUpdate(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Resource, error) {
	return r.getByID(ctx, scope, id, true)
}

func (r *Repo) getByID(ctx context.Context, scope domain.Scope, id uuid.UUID, lock bool) (*domain.Resource, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Select(resourceColumns).
		From("resources r").
		Join("principals p ON p.id = r.owner_id").
		Where(ScopePredicate(scope)).
		Where(squirrel.Eq{"r.id": id}).
		Where(squirrel.Eq{"r.deleted_at": nil})
	if lock {
		query = query.Suffix("FOR UPDATE OF r")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	res, err := scanResource(row)
	if err != nil {
		return nil, postgres.MapError(err, "resource", id)
	}

	return res, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new resource and returns the persisted row. Entity-specific
// create wrappers and test seeds call this; scope changes never do.
func (r *Repo) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	id := res.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := psql.Insert("resources").
		Columns("id", "kind", "status", "title", "notes", "streams", "owner_id", "team_id", "occurs_at").
		Values(id, res.Kind, res.Status, res.Title, res.Notes, res.Streams, res.OwnerID, res.TeamID, res.OccursAt).
		Suffix("RETURNING " + insertReturning)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	created, err := scanResource(row)
	if err != nil {
		return nil, postgres.MapError(err, "resource", id)
	}

	return created, nil
}

// insertReturning mirrors resourceColumns without the table alias.
const insertReturning = "id, kind, status, title, notes, streams, " +
	"owner_id, team_id, occurs_at, created_at, updated_at, deleted_at"

// AssignTeam atomically assigns a personal-scoped resource to a team. The
// update only applies while the resource is still owned by ownerID, has no
// team and is not soft-deleted, so of N racing callers exactly one sees a
// non-zero row count. Returns the number of rows updated (0 or 1).
func (r *Repo) AssignTeam(ctx context.Context, id, ownerID, teamID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Update("resources").
		Set("team_id", teamID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"team_id": nil}).
		Where(squirrel.Eq{"deleted_at": nil})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build assign query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "resource", id)
	}

	return tag.RowsAffected(), nil
}

// SetStatus updates the lifecycle status of a non-deleted resource.
// Returns the number of rows updated (0 or 1).
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Update("resources").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build status query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "resource", id)
	}

	return tag.RowsAffected(), nil
}

// SoftDelete marks a resource deleted. Returns the number of rows updated.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Update("resources").
		Set("deleted_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "resource", id)
	}

	return tag.RowsAffected(), nil
}

// Restore clears the soft-delete mark on a resource visible under the scope.
// Soft-deleted rows are invisible to the scoped read paths, so the visibility
// check rides along as a subquery in the same statement instead of a prior
// lookup. A restore outside the caller's scope affects zero rows.
// Returns the number of rows updated (0 or 1).
func (r *Repo) Restore(ctx context.Context, scope domain.Scope, id uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	visible := squirrel.Select("r.id").
		From("resources r").
		Join("principals p ON p.id = r.owner_id").
		Where(ScopePredicate(scope)).
		Where(squirrel.Eq{"r.id": id})

	visibleSQL, visibleArgs, err := visible.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build restore scope query: %w", err)
	}

	query := psql.Update("resources").
		Set("deleted_at", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"deleted_at": nil}).
		Where(squirrel.Expr("id IN ("+visibleSQL+")", visibleArgs...))

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build restore query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "resource", id)
	}

	return tag.RowsAffected(), nil
}

// LinkArtist creates an M2M link between a resource and an artist.
// Idempotent: linking the same pair twice is not an error.
func (r *Repo) LinkArtist(ctx context.Context, resourceID, artistID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Insert("resource_artists").
		Columns("resource_id", "artist_id").
		Values(resourceID, artistID).
		Suffix("ON CONFLICT (resource_id, artist_id) DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build link query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "resource_artist", resourceID)
	}

	return nil
}

// HardDeleteOld physically removes resources soft-deleted before the
// threshold. Only the external retention process (cmd/cleanup) calls this;
// the core itself never deletes rows.
func (r *Repo) HardDeleteOld(ctx context.Context, threshold time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Delete("resources").
		Where(squirrel.Lt{"deleted_at": threshold})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "resource", uuid.Nil)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanResource scans a single row into a domain.Resource.
func scanResource(row pgx.Row) (*domain.Resource, error) {
	var res domain.Resource
	err := row.Scan(
		&res.ID, &res.Kind, &res.Status, &res.Title, &res.Notes, &res.Streams,
		&res.OwnerID, &res.TeamID, &res.OccursAt,
		&res.CreatedAt, &res.UpdatedAt, &res.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// scanResources scans multiple rows into a slice.
// Returns an empty slice (not nil) when there are no rows.
func scanResources(rows pgx.Rows) ([]domain.Resource, error) {
	result := []domain.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
