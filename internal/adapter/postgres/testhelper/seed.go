package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPrincipal creates a principal with a unique email. Returns a filled domain.Principal.
func SeedPrincipal(t *testing.T, pool *pgxpool.Pool) domain.Principal {
	t.Helper()

	suffix := uniqueSuffix()
	return SeedPrincipalWithEmail(t, pool, "principal-"+suffix+"@example.com")
}

// SeedPrincipalWithEmail creates a principal with the given email.
func SeedPrincipalWithEmail(t *testing.T, pool *pgxpool.Pool, email string) domain.Principal {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Principal{
		ID:        uuid.New(),
		Email:     email,
		Name:      "Principal " + uniqueSuffix(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO principals (id, email, name, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Email, p.Name, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPrincipal insert: %v", err)
	}

	return p
}

// SeedTeam creates a team. proxyEmail may be nil.
func SeedTeam(t *testing.T, pool *pgxpool.Pool, proxyEmail *string) domain.Team {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	team := domain.Team{
		ID:         uuid.New(),
		Name:       "Team " + uniqueSuffix(),
		ProxyEmail: proxyEmail,
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO teams (id, name, proxy_email, created_at) VALUES ($1, $2, $3, $4)`,
		team.ID, team.Name, team.ProxyEmail, team.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTeam insert: %v", err)
	}

	return team
}

// SeedMembership adds a principal to a team.
func SeedMembership(t *testing.T, pool *pgxpool.Pool, teamID, principalID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO team_members (team_id, principal_id) VALUES ($1, $2)`,
		teamID, principalID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMembership insert: %v", err)
	}
}

// SeedResource inserts a resource. Zero-valued fields of r get defaults:
// a fresh ID, kind SONG, status ACTIVE, a unique title, and current timestamps.
// OwnerID must be set. Returns the resource as inserted.
func SeedResource(t *testing.T, pool *pgxpool.Pool, r domain.Resource) domain.Resource {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Kind == "" {
		r.Kind = domain.ResourceKindSong
	}
	if r.Status == "" {
		r.Status = domain.ResourceStatusActive
	}
	if r.Title == "" {
		r.Title = "Resource " + uniqueSuffix()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	if r.OwnerID == uuid.Nil {
		t.Fatal("testhelper: SeedResource requires OwnerID")
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO resources (id, kind, status, title, notes, streams, owner_id, team_id, occurs_at, created_at, updated_at, deleted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID, string(r.Kind), string(r.Status), r.Title, r.Notes, r.Streams,
		r.OwnerID, r.TeamID, r.OccursAt, r.CreatedAt, r.UpdatedAt, r.DeletedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedResource insert: %v", err)
	}

	return r
}

// SeedArtist creates an artist with a unique name.
func SeedArtist(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO artists (id, name) VALUES ($1, $2)`,
		id, "Artist "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArtist insert: %v", err)
	}

	return id
}

// LinkArtist attaches an artist to a resource.
func LinkArtist(t *testing.T, pool *pgxpool.Pool, resourceID, artistID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO resource_artists (resource_id, artist_id) VALUES ($1, $2)`,
		resourceID, artistID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkArtist insert: %v", err)
	}
}
