// Package audit implements the audit trail repository using PostgreSQL.
// The audit_log table is append-only: this package exposes no update or
// delete operations, and retention is an external concern.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres"
	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const appendSQL = `
INSERT INTO audit_log (id, resource_id, event_type, actor_id, payload, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id, resource_id, event_type, actor_id, payload, created_at`

// Append inserts a new audit entry and returns the persisted record.
// The timestamp is assigned here (database now()), never taken from the
// draft, so ordering cannot be skewed by caller clocks. Mutation paths must
// call Append inside the same transaction as the mutation it describes.
func (r *Repo) Append(ctx context.Context, draft domain.AuditEntry) (domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	id := draft.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	payloadJSON, err := json.Marshal(draft.Payload)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("audit_entry marshal payload: %w", err)
	}

	row := q.QueryRow(ctx, appendSQL, id, draft.ResourceID, draft.EventType, draft.ActorID, payloadJSON)

	entry, err := scanEntry(row)
	if err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, "audit_entry", id)
	}

	return entry, nil
}

// Log appends an entry without returning it. Satisfies the workspace
// service's auditLogger interface.
func (r *Repo) Log(ctx context.Context, draft domain.AuditEntry) error {
	_, err := r.Append(ctx, draft)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const listByResourceSQL = `
SELECT id, resource_id, event_type, actor_id, payload, created_at
FROM audit_log
WHERE resource_id = $1
ORDER BY created_at DESC, id ASC
LIMIT $2`

// ListByResource returns the change history for one resource, newest first.
func (r *Repo) ListByResource(ctx context.Context, resourceID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByResourceSQL, resourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries by resource: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

const listByActorSQL = `
SELECT id, resource_id, event_type, actor_id, payload, created_at
FROM audit_log
WHERE actor_id = $1
ORDER BY created_at DESC, id ASC
LIMIT $2 OFFSET $3`

// ListByActor returns the entries recorded for an actor, newest first,
// with offset pagination.
func (r *Repo) ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByActorSQL, actorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries by actor: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

const countByResourceAndTypeSQL = `
SELECT count(*) FROM audit_log WHERE resource_id = $1 AND event_type = $2`

// CountByResourceAndType returns how many entries of one event type exist for
// a resource. Tests use it to verify the exactly-one-audit-entry guarantee.
func (r *Repo) CountByResourceAndType(ctx context.Context, resourceID uuid.UUID, eventType domain.AuditEventType) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, countByResourceAndTypeSQL, resourceID, eventType).Scan(&count); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanEntry scans a single row into a domain.AuditEntry.
func scanEntry(row pgx.Row) (domain.AuditEntry, error) {
	var (
		entry       domain.AuditEntry
		payloadJSON []byte
	)

	err := row.Scan(&entry.ID, &entry.ResourceID, &entry.EventType, &entry.ActorID, &payloadJSON, &entry.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, err
	}

	if len(payloadJSON) > 0 {
		payload := make(map[string]any)
		if err := json.Unmarshal(payloadJSON, &payload); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("audit_entry %s unmarshal payload: %w", entry.ID, err)
		}
		entry.Payload = payload
	}

	return entry, nil
}

// scanEntries scans multiple rows into a slice.
// Returns an empty slice (not nil) when there are no rows.
func scanEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	result := []domain.AuditEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
