package http

import (
	"time"

	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

// Wire representations. The JSON field names match what the frontend
// consumes; empty optional fields serialize as null.

type caseResponse struct {
	ID             int64                   `json:"id"`
	HashID         string                  `json:"hashId"`
	Title          string                  `json:"title"`
	Sex            string                  `json:"sex"`
	AgeRange       string                  `json:"ageRange"`
	Description    string                  `json:"description"`
	Query          string                  `json:"query"`
	Urgency        string                  `json:"urgency"`
	Status         string                  `json:"status"`
	AssignedExpert *string                 `json:"assignedExpert"`
	CreatedBy      string                  `json:"createdBy"`
	ChangeReason   *string                 `json:"changeReason"`
	Reopened       bool                    `json:"reopened"`
	History        []statusChangeResponse  `json:"history"`
	LastMessage    *messagePreviewResponse `json:"lastMessage"`
	UnreadCounts   map[string]int          `json:"unreadCounts"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

type statusChangeResponse struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

type messagePreviewResponse struct {
	At       time.Time `json:"at"`
	AuthorID string    `json:"authorId"`
	Preview  string    `json:"preview"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	CaseID     int64     `json:"caseId"`
	AuthorID   string    `json:"authorId"`
	AuthorRole string    `json:"authorRole"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toCaseResponse(c *model.Case) *caseResponse {
	history := make([]statusChangeResponse, 0, len(c.History))
	for _, entry := range c.History {
		history = append(history, statusChangeResponse{
			From:   entry.From.String(),
			To:     entry.To.String(),
			Reason: entry.Reason,
			At:     entry.At,
		})
	}

	var lastMessage *messagePreviewResponse
	if c.LastMessage != nil {
		lastMessage = &messagePreviewResponse{
			At:       c.LastMessage.At,
			AuthorID: c.LastMessage.AuthorID,
			Preview:  c.LastMessage.Preview,
		}
	}

	unread := c.UnreadCounts
	if unread == nil {
		unread = map[string]int{}
	}

	return &caseResponse{
		ID:             c.ID,
		HashID:         c.HashID,
		Title:          c.Title,
		Sex:            c.Sex,
		AgeRange:       c.AgeRange,
		Description:    c.Description,
		Query:          c.Query,
		Urgency:        c.Urgency.String(),
		Status:         c.Status.String(),
		AssignedExpert: optionalString(c.AssignedExpert),
		CreatedBy:      c.CreatedBy,
		ChangeReason:   optionalString(c.ChangeReason),
		Reopened:       c.Reopened,
		History:        history,
		LastMessage:    lastMessage,
		UnreadCounts:   unread,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCaseResponses(cases []*model.Case) []*caseResponse {
	out := make([]*caseResponse, 0, len(cases))
	for _, c := range cases {
		out = append(out, toCaseResponse(c))
	}
	return out
}

func toMessageResponse(m *model.Message) *messageResponse {
	return &messageResponse{
		ID:         m.ID,
		CaseID:     m.CaseID,
		AuthorID:   m.AuthorID,
		AuthorRole: m.AuthorRole.String(),
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageResponses(messages []*model.Message) []*messageResponse {
	out := make([]*messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	return out
}
