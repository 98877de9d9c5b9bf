// Package audit exposes the read side of the audit trail: a filterable
// timeline and a CSV export for compliance reviews.
package audit

import (
	"time"
)

// Entry is one row of the timeline, joined with the actor's username
// when the actor still exists.
type Entry struct {
	ID            int64          `json:"id"`
	ActorID       int64          `json:"actor_id"`
	ActorUsername string         `json:"actor_username,omitempty"`
	Action        string         `json:"action"`
	Entity        string         `json:"entity"`
	EntityID      string         `json:"entity_id"`
	Detail        string         `json:"detail"`
	Meta          map[string]any `json:"meta,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// Filters narrows the timeline. Zero values mean "no filter".
type Filters struct {
	ActorID  int64
	Entity   string
	Action   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PerPage  int
}
