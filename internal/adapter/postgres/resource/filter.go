package resource

import (
	"strings"

	"github.com/stagedesk/stagedesk-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	sortByTitle     = "title"
	sortByCreatedAt = "created_at"
	sortByUpdatedAt = "updated_at"
	sortByStreams   = "streams"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalizeFilter applies defaults and clamps values. The input is copied so
// callers keep their original filter.
func normalizeFilter(f domain.ResourceFilter) domain.ResourceFilter {
	// Sort column.
	switch f.SortBy {
	case sortByTitle, sortByCreatedAt, sortByUpdatedAt, sortByStreams:
		// valid
	default:
		f.SortBy = sortByCreatedAt
	}

	// Sort order.
	switch strings.ToUpper(f.SortOrder) {
	case sortOrderASC:
		f.SortOrder = sortOrderASC
	case sortOrderDESC:
		f.SortOrder = sortOrderDESC
	default:
		f.SortOrder = sortOrderDESC
	}

	// Limit.
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	// Offset cannot be negative.
	if f.Offset < 0 {
		f.Offset = 0
	}

	return f
}

// escapeLike escapes LIKE/ILIKE metacharacters in user-supplied search text
// so it is always treated as a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
