package team_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/team"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/testhelper"
	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*team.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return team.New(pool), pool
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	proxy := "catalog@example.com"
	seeded := testhelper.SeedTeam(t, pool, &proxy)

	t.Run("existing team", func(t *testing.T) {
		got, err := repo.GetByID(ctx, seeded.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ID != seeded.ID || got.Name != seeded.Name {
			t.Errorf("got %+v, want %+v", got, seeded)
		}
		if got.ProxyEmail == nil || *got.ProxyEmail != proxy {
			t.Errorf("proxy email = %v, want %q", got.ProxyEmail, proxy)
		}
	})

	t.Run("nil proxy email", func(t *testing.T) {
		noProxy := testhelper.SeedTeam(t, pool, nil)
		got, err := repo.GetByID(ctx, noProxy.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ProxyEmail != nil {
			t.Errorf("proxy email = %v, want nil", got.ProxyEmail)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepo_IsAuthorized(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedTeam(t, pool, nil)
	member := testhelper.SeedPrincipal(t, pool)
	stranger := testhelper.SeedPrincipal(t, pool)
	testhelper.SeedMembership(t, pool, seeded.ID, member.ID)

	ok, err := repo.IsAuthorized(ctx, member.ID, seeded.ID)
	if err != nil {
		t.Fatalf("IsAuthorized member: %v", err)
	}
	if !ok {
		t.Error("member should be authorized")
	}

	ok, err = repo.IsAuthorized(ctx, stranger.ID, seeded.ID)
	if err != nil {
		t.Fatalf("IsAuthorized stranger: %v", err)
	}
	if ok {
		t.Error("non-member should not be authorized")
	}
}

func TestRepo_AddMember_Idempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedTeam(t, pool, nil)
	principal := testhelper.SeedPrincipal(t, pool)

	if err := repo.AddMember(ctx, seeded.ID, principal.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := repo.AddMember(ctx, seeded.ID, principal.ID); err != nil {
		t.Fatalf("AddMember twice: %v", err)
	}

	ok, err := repo.IsAuthorized(ctx, principal.ID, seeded.ID)
	if err != nil {
		t.Fatalf("IsAuthorized: %v", err)
	}
	if !ok {
		t.Error("added member should be authorized")
	}
}
