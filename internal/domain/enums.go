package domain

// ResourceKind identifies the kind of workspace resource.
type ResourceKind string

const (
	ResourceKindDocument ResourceKind = "DOCUMENT"
	ResourceKindContract ResourceKind = "CONTRACT"
	ResourceKindRelease  ResourceKind = "RELEASE"
	ResourceKindTask     ResourceKind = "TASK"
	ResourceKindSong     ResourceKind = "SONG"
	ResourceKindEvent    ResourceKind = "EVENT"
)

func (k ResourceKind) String() string { return string(k) }

func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceKindDocument, ResourceKindContract, ResourceKindRelease,
		ResourceKindTask, ResourceKindSong, ResourceKindEvent:
		return true
	}
	return false
}

// ResourceKinds lists every kind in declaration order. Aggregations use it to
// zero-fill groups that have no members.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceKindDocument, ResourceKindContract, ResourceKindRelease,
		ResourceKindTask, ResourceKindSong, ResourceKindEvent,
	}
}

// ResourceStatus is the lifecycle status shared by all resource kinds.
type ResourceStatus string

const (
	ResourceStatusDraft     ResourceStatus = "DRAFT"
	ResourceStatusActive    ResourceStatus = "ACTIVE"
	ResourceStatusPending   ResourceStatus = "PENDING"
	ResourceStatusCompleted ResourceStatus = "COMPLETED"
	ResourceStatusArchived  ResourceStatus = "ARCHIVED"
)

func (s ResourceStatus) String() string { return string(s) }

func (s ResourceStatus) IsValid() bool {
	switch s {
	case ResourceStatusDraft, ResourceStatusActive, ResourceStatusPending,
		ResourceStatusCompleted, ResourceStatusArchived:
		return true
	}
	return false
}

// ResourceStatuses lists every status in declaration order.
func ResourceStatuses() []ResourceStatus {
	return []ResourceStatus{
		ResourceStatusDraft, ResourceStatusActive, ResourceStatusPending,
		ResourceStatusCompleted, ResourceStatusArchived,
	}
}

// AuditEventType is the kind of mutation recorded in the audit log.
type AuditEventType string

const (
	AuditEventCreated       AuditEventType = "CREATED"
	AuditEventMovedToTeam   AuditEventType = "MOVED_TO_TEAM"
	AuditEventStatusChanged AuditEventType = "STATUS_CHANGED"
	AuditEventSoftDeleted   AuditEventType = "SOFT_DELETED"
	AuditEventRestored      AuditEventType = "RESTORED"
)

func (t AuditEventType) String() string { return string(t) }

func (t AuditEventType) IsValid() bool {
	switch t {
	case AuditEventCreated, AuditEventMovedToTeam, AuditEventStatusChanged,
		AuditEventSoftDeleted, AuditEventRestored:
		return true
	}
	return false
}

// Period is a relative time window over created_at, in days.
type Period int

const (
	PeriodWeek      Period = 7
	PeriodFortnight Period = 14
	PeriodMonth     Period = 30
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodFortnight, PeriodMonth:
		return true
	}
	return false
}

// Days returns the window size in days.
func (p Period) Days() int { return int(p) }
