package entities

import "time"

// OutboxTopic separates user notifications from follow-on jobs.
type OutboxTopic string

const (
	OutboxTopicNotification OutboxTopic = "notification"
	OutboxTopicJob          OutboxTopic = "job"
)

// OutboxMessage is work handed off by a transition. It is written in the
// transition's transaction and delivered at least once by the relay once
// RunAt has passed.
type OutboxMessage struct {
	ID           string            `json:"id"`
	RecordKind   RecordKind        `json:"record_kind"`
	RecordID     string            `json:"record_id"`
	Topic        OutboxTopic       `json:"topic"`
	Type         string            `json:"type"`
	Recipient    string            `json:"recipient,omitempty"`
	Payload      map[string]string `json:"payload,omitempty"`
	RunAt        time.Time         `json:"run_at"`
	CreatedAt    time.Time         `json:"created_at"`
	DispatchedAt *time.Time        `json:"dispatched_at,omitempty"`
}

func (m OutboxMessage) Due(now time.Time) bool {
	return m.DispatchedAt == nil && !now.Before(m.RunAt)
}
