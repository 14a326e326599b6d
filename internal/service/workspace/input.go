package workspace

import (
	"github.com/google/uuid"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

// QueryInput selects a scope and a filter for a resource listing.
type QueryInput struct {
	TeamID *uuid.UUID
	Filter domain.ResourceFilter
}

// Validate checks enum-typed filter fields.
func (in QueryInput) Validate() error {
	if in.Filter.Kind != nil && !in.Filter.Kind.IsValid() {
		return domain.NewValidationError("kind", "unknown resource kind")
	}
	if in.Filter.Status != nil && !in.Filter.Status.IsValid() {
		return domain.NewValidationError("status", "unknown resource status")
	}
	if in.Filter.Period != nil && !in.Filter.Period.IsValid() {
		return domain.NewValidationError("period", "must be 7, 14 or 30 days")
	}
	return nil
}

// GetInput selects a single resource within a scope.
type GetInput struct {
	TeamID     *uuid.UUID
	ResourceID uuid.UUID
}

// Validate checks required ids.
func (in GetInput) Validate() error {
	if in.ResourceID == uuid.Nil {
		return domain.NewValidationError("resource_id", "required")
	}
	return nil
}

// MoveToTeamInput moves a personal-scoped resource into a team.
type MoveToTeamInput struct {
	ResourceID      uuid.UUID
	FromPrincipalID uuid.UUID
	ToTeamID        uuid.UUID
}

// Validate checks required ids.
func (in MoveToTeamInput) Validate() error {
	if in.ResourceID == uuid.Nil {
		return domain.NewValidationError("resource_id", "required")
	}
	if in.FromPrincipalID == uuid.Nil {
		return domain.NewValidationError("from_principal_id", "required")
	}
	if in.ToTeamID == uuid.Nil {
		return domain.NewValidationError("to_team_id", "required")
	}
	return nil
}

// SetStatusInput transitions a resource's lifecycle status.
type SetStatusInput struct {
	TeamID     *uuid.UUID
	ResourceID uuid.UUID
	Status     domain.ResourceStatus
}

// Validate checks required ids and the target status.
func (in SetStatusInput) Validate() error {
	if in.ResourceID == uuid.Nil {
		return domain.NewValidationError("resource_id", "required")
	}
	if !in.Status.IsValid() {
		return domain.NewValidationError("status", "unknown resource status")
	}
	return nil
}

// DeleteInput soft-deletes a resource within a scope.
type DeleteInput struct {
	TeamID     *uuid.UUID
	ResourceID uuid.UUID
}

// Validate checks required ids.
func (in DeleteInput) Validate() error {
	if in.ResourceID == uuid.Nil {
		return domain.NewValidationError("resource_id", "required")
	}
	return nil
}

// StatsInput selects a team scope and aggregation options.
type StatsInput struct {
	TeamID *uuid.UUID

	// TopN, when > 0, includes the top-N resources by streams.
	TopN int

	// WithStreamsTotal includes the stream sum across the scope.
	WithStreamsTotal bool
}

// Validate clamps TopN.
func (in StatsInput) Validate() error {
	if in.TopN < 0 {
		return domain.NewValidationError("top_n", "must not be negative")
	}
	return nil
}
