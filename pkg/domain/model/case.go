package model

import (
	"time"

	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// Case is the aggregate root for a submitted clinical consultation. The
// clinical payload fields (Title, Sex, AgeRange, Description, Query,
// Urgency) are opaque to the lifecycle: they are stored and listed, never
// validated or interpreted. Description and Query carry masq tags so the
// structured logger redacts clinical text.
type Case struct {
	ID     int64
	HashID string // 4-char human-facing ID, unique across cases

	Title       string
	Sex         string
	AgeRange    string
	Description string `masq:"secret"`
	Query       string `masq:"secret"`
	Urgency     types.Urgency

	Status         types.CaseStatus
	AssignedExpert string // identity of the reviewing specialist, "" = unassigned
	CreatedBy      string // identity of the submitting actor
	ChangeReason   string // reason attached to the most recent status change
	Reopened       bool   // true once the case left a terminal status back into review

	History      []StatusChange
	LastMessage  *MessagePreview
	UnreadCounts map[string]int // participant identity -> unread message count

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusChange is one entry of a case's append-only status history
type StatusChange struct {
	From   types.CaseStatus
	To     types.CaseStatus
	Reason string
	At     time.Time
}

// MessagePreview is the list-view snapshot of the latest message on a case
type MessagePreview struct {
	At       time.Time
	AuthorID string
	Preview  string
}

// Participants returns the identities associated with the case: the creator
// and, when assigned, the expert.
func (c *Case) Participants() []string {
	participants := []string{c.CreatedBy}
	if c.AssignedExpert != "" && c.AssignedExpert != c.CreatedBy {
		participants = append(participants, c.AssignedExpert)
	}
	return participants
}

// IsParticipant reports whether identity may read or post messages on the
// case.
func (c *Case) IsParticipant(identity string) bool {
	return identity == c.CreatedBy || (c.AssignedExpert != "" && identity == c.AssignedExpert)
}

// UnreadCount returns the unread message count for identity, treating a
// missing entry as zero.
func (c *Case) UnreadCount(identity string) int {
	if c.UnreadCounts == nil {
		return 0
	}
	return c.UnreadCounts[identity]
}
