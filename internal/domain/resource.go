package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an authenticated identity supplied by the external identity
// provider. Email is authoritative and immutable per session.
type Principal struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}

// Team is a shared workspace. When ProxyEmail is set, resources owned by a
// principal with that email are treated as team-scoped even without an
// explicit team assignment. This is the only implicit scope-widening
// mechanism.
type Team struct {
	ID         uuid.UUID
	Name       string
	ProxyEmail *string
	CreatedAt  time.Time
}

// Resource generalizes documents, contracts, releases, tasks, songs and
// events into one scoped, soft-deletable record.
type Resource struct {
	ID       uuid.UUID
	Kind     ResourceKind
	Status   ResourceStatus
	Title    string
	Notes    *string
	Streams  int64
	OwnerID  uuid.UUID
	TeamID   *uuid.UUID
	OccursAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted returns true if the resource has been soft-deleted.
func (r *Resource) IsDeleted() bool {
	return r.DeletedAt != nil
}

// IsPersonal returns true if the resource lives in a principal's personal
// scope (no explicit team assignment).
func (r *Resource) IsPersonal() bool {
	return r.TeamID == nil
}
