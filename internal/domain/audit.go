package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one immutable record in a resource's audit trail. Entries are
// appended in the same transaction as the mutation they describe and are never
// updated or deleted by this core.
type AuditEntry struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	EventType  AuditEventType
	ActorID    uuid.UUID
	Payload    map[string]any

	// CreatedAt is assigned by the audit writer, never by the caller.
	CreatedAt time.Time
}

// Payload keys used by the workspace mutations.
const (
	AuditKeyMovedBy      = "moved_by_user_id"
	AuditKeyFromPersonal = "from_personal_account"
	AuditKeyToTeamID     = "to_team_id"
	AuditKeyOldStatus    = "old_status"
	AuditKeyNewStatus    = "new_status"
)
