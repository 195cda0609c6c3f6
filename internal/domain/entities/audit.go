package entities

import "time"

// AuditEntry records one applied status transition. Entries are written in
// the same transaction as the status change and are never updated.
type AuditEntry struct {
	ID         string            `json:"id"`
	RecordKind RecordKind        `json:"record_kind"`
	RecordID   string            `json:"record_id"`
	Action     string            `json:"action"`
	FromStatus string            `json:"from_status"`
	ToStatus   string            `json:"to_status"`
	ActorID    string            `json:"actor_id"`
	ActorGroup UserGroup         `json:"actor_group"`
	Note       string            `json:"note,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
