package model

import (
	"time"

	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// Message is a case-scoped chat message. Messages are immutable after
// creation.
type Message struct {
	ID         string
	CaseID     int64
	AuthorID   string
	AuthorRole types.Role
	Body       string `masq:"secret"`
	CreatedAt  time.Time

	// Read is kept for older clients.
	//
	// Deprecated: superseded by Case.UnreadCounts.
	Read bool
}

// previewLimit is the maximum rune length of a list-view message preview
const previewLimit = 50

// Preview returns the message body truncated for list display. Truncation
// is rune-based so multi-byte text keeps its shape.
func (m *Message) Preview() string {
	return TruncatePreview(m.Body)
}

// TruncatePreview shortens body to the preview limit, appending an ellipsis
// marker when anything was cut.
func TruncatePreview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLimit {
		return body
	}
	return string(runes[:previewLimit]) + "..."
}
