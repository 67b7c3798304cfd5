package events

import (
	"time"

	"github.com/sukyoungshin/member-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberCreated EventType = "member_created"
	EventMemberUpdated EventType = "member_updated"
	EventMemberDeleted EventType = "member_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MemberID  int64       `json:"member_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberCreatedPayload payload.
type MemberCreatedPayload struct {
	No         string        `json:"no"`
	Name       string        `json:"name"`
	Gender     domain.Gender `json:"gender"`
	RoleID     int64         `json:"role_id"`
	JobTitleID int64         `json:"job_title_id"`
}

// MemberUpdatedPayload payload.
type MemberUpdatedPayload struct {
	UpdatedFields []string `json:"updated_fields"`
}

// MemberDeletedPayload payload.
type MemberDeletedPayload struct {
	Existed bool `json:"existed"`
}
