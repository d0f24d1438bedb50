package interfaces

import (
	"context"

	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

// MessageRepository defines the interface for case-scoped message
// persistence. Messages are append-only.
type MessageRepository interface {
	// Append stores a message under its case
	Append(ctx context.Context, msg *model.Message) error

	// ListByCase retrieves all messages for a case in ascending
	// creation order
	ListByCase(ctx context.Context, caseID int64) ([]*model.Message, error)
}
