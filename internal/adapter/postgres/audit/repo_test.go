package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/audit"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/testhelper"
	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*audit.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return audit.New(pool), pool
}

// seedSubject creates a principal and a resource to audit against.
func seedSubject(t *testing.T, pool *pgxpool.Pool) (domain.Principal, domain.Resource) {
	t.Helper()
	actor := testhelper.SeedPrincipal(t, pool)
	res := testhelper.SeedResource(t, pool, domain.Resource{OwnerID: actor.ID})
	return actor, res
}

func TestRepo_Append_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)

	got, err := repo.Append(ctx, domain.AuditEntry{
		ResourceID: res.ID,
		EventType:  domain.AuditEventMovedToTeam,
		ActorID:    actor.ID,
		Payload: map[string]any{
			domain.AuditKeyMovedBy:      actor.ID.String(),
			domain.AuditKeyFromPersonal: true,
		},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("ID should be assigned")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be assigned by the database")
	}
	if got.EventType != domain.AuditEventMovedToTeam {
		t.Errorf("EventType = %s, want %s", got.EventType, domain.AuditEventMovedToTeam)
	}
	if got.Payload[domain.AuditKeyMovedBy] != actor.ID.String() {
		t.Errorf("payload moved_by = %v, want %s", got.Payload[domain.AuditKeyMovedBy], actor.ID)
	}
	if got.Payload[domain.AuditKeyFromPersonal] != true {
		t.Errorf("payload from_personal_account = %v, want true", got.Payload[domain.AuditKeyFromPersonal])
	}
}

func TestRepo_Append_TimestampFromDatabase(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)

	// A caller-supplied timestamp must be ignored; the writer assigns now().
	skewed := domain.AuditEntry{
		ResourceID: res.ID,
		EventType:  domain.AuditEventCreated,
		ActorID:    actor.ID,
	}
	skewed.CreatedAt = skewed.CreatedAt.AddDate(-10, 0, 0)

	got, err := repo.Append(ctx, skewed)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if got.CreatedAt.Year() < 2000 {
		t.Errorf("CreatedAt = %s, want a database-assigned timestamp", got.CreatedAt)
	}
}

func TestRepo_Append_UnknownResource(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor := testhelper.SeedPrincipal(t, pool)

	_, err := repo.Append(ctx, domain.AuditEntry{
		ResourceID: uuid.New(),
		EventType:  domain.AuditEventCreated,
		ActorID:    actor.ID,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound (FK violation)", err)
	}
}

func TestRepo_ListByResource_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)

	events := []domain.AuditEventType{
		domain.AuditEventCreated,
		domain.AuditEventStatusChanged,
		domain.AuditEventSoftDeleted,
	}
	for _, ev := range events {
		if _, err := repo.Append(ctx, domain.AuditEntry{
			ResourceID: res.ID,
			EventType:  ev,
			ActorID:    actor.ID,
		}); err != nil {
			t.Fatalf("Append %s: %v", ev, err)
		}
	}

	got, err := repo.ListByResource(ctx, res.ID, 10)
	if err != nil {
		t.Fatalf("ListByResource: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("entries not in DESC order at index %d", i)
		}
	}
}

func TestRepo_ListByResource_LimitAndIsolation(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)
	otherRes := testhelper.SeedResource(t, pool, domain.Resource{OwnerID: actor.ID})

	for range 4 {
		if _, err := repo.Append(ctx, domain.AuditEntry{
			ResourceID: res.ID, EventType: domain.AuditEventStatusChanged, ActorID: actor.ID,
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if _, err := repo.Append(ctx, domain.AuditEntry{
		ResourceID: otherRes.ID, EventType: domain.AuditEventCreated, ActorID: actor.ID,
	}); err != nil {
		t.Fatalf("Append other: %v", err)
	}

	got, err := repo.ListByResource(ctx, res.ID, 2)
	if err != nil {
		t.Fatalf("ListByResource: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("entries = %d, want 2 (limit)", len(got))
	}
	for _, e := range got {
		if e.ResourceID != res.ID {
			t.Errorf("entry for resource %s leaked into %s's trail", e.ResourceID, res.ID)
		}
	}
}

func TestRepo_ListByResource_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.ListByResource(context.Background(), uuid.New(), 10)
	if err != nil {
		t.Fatalf("ListByResource: %v", err)
	}
	if got == nil {
		t.Fatal("result should be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("entries = %d, want 0", len(got))
	}
}

func TestRepo_ListByActor_Pagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)
	other := testhelper.SeedPrincipal(t, pool)
	otherRes := testhelper.SeedResource(t, pool, domain.Resource{OwnerID: other.ID})

	for range 5 {
		if _, err := repo.Append(ctx, domain.AuditEntry{
			ResourceID: res.ID, EventType: domain.AuditEventStatusChanged, ActorID: actor.ID,
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if _, err := repo.Append(ctx, domain.AuditEntry{
		ResourceID: otherRes.ID, EventType: domain.AuditEventCreated, ActorID: other.ID,
	}); err != nil {
		t.Fatalf("Append other actor: %v", err)
	}

	page1, err := repo.ListByActor(ctx, actor.ID, 3, 0)
	if err != nil {
		t.Fatalf("ListByActor page1: %v", err)
	}
	page2, err := repo.ListByActor(ctx, actor.ID, 3, 3)
	if err != nil {
		t.Fatalf("ListByActor page2: %v", err)
	}

	if len(page1) != 3 || len(page2) != 2 {
		t.Fatalf("pages = %d/%d, want 3/2", len(page1), len(page2))
	}

	ids := map[uuid.UUID]bool{}
	for _, e := range append(page1, page2...) {
		if e.ActorID != actor.ID {
			t.Errorf("entry by %s leaked into %s's history", e.ActorID, actor.ID)
		}
		if ids[e.ID] {
			t.Errorf("duplicate entry %s across pages", e.ID)
		}
		ids[e.ID] = true
	}
}

func TestRepo_CountByResourceAndType(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)

	for range 2 {
		if _, err := repo.Append(ctx, domain.AuditEntry{
			ResourceID: res.ID, EventType: domain.AuditEventStatusChanged, ActorID: actor.ID,
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if _, err := repo.Append(ctx, domain.AuditEntry{
		ResourceID: res.ID, EventType: domain.AuditEventMovedToTeam, ActorID: actor.ID,
	}); err != nil {
		t.Fatalf("Append moved: %v", err)
	}

	count, err := repo.CountByResourceAndType(ctx, res.ID, domain.AuditEventStatusChanged)
	if err != nil {
		t.Fatalf("CountByResourceAndType: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, err = repo.CountByResourceAndType(ctx, res.ID, domain.AuditEventMovedToTeam)
	if err != nil {
		t.Fatalf("CountByResourceAndType: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestRepo_Append_NilPayload(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	actor, res := seedSubject(t, pool)

	got, err := repo.Append(ctx, domain.AuditEntry{
		ResourceID: res.ID,
		EventType:  domain.AuditEventSoftDeleted,
		ActorID:    actor.ID,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	// nil payload marshals to JSON null; reading it back yields a nil map.
	if len(got.Payload) != 0 {
		t.Errorf("payload = %v, want empty", got.Payload)
	}
}
