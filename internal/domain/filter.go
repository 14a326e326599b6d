package domain

import "github.com/google/uuid"

// ResourceFilter contains filtering/pagination parameters for resource
// queries. Every set field is ANDed with the scope predicate. Nil pointer
// fields mean "match anything" — there is no ALL member in the enums.
type ResourceFilter struct {
	// Search performs a case-insensitive substring match over title and notes.
	Search *string

	// Kind restricts results to a single resource kind.
	Kind *ResourceKind

	// Status restricts results to a single lifecycle status.
	Status *ResourceStatus

	// ArtistIDs keeps resources linked to at least one of the given artists
	// via the resource_artists join table.
	ArtistIDs []uuid.UUID

	// Period keeps resources created within the last N days.
	Period *Period

	// IncludeDeleted also returns soft-deleted resources. Only trash/restore
	// views set this.
	IncludeDeleted bool

	// SortBy determines the sort column: "title", "created_at", "updated_at",
	// "streams". Default: "created_at".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "DESC".
	SortOrder string

	// Limit is the maximum number of resources to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of resources to skip.
	Offset int
}
