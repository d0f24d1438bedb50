package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

// MessageUseCase maintains case-scoped messages and the per-participant
// unread counters on the owning case
type MessageUseCase struct {
	repo  interfaces.Repository
	locks *caseLocker
}

func NewMessageUseCase(repo interfaces.Repository, locks *caseLocker) *MessageUseCase {
	return &MessageUseCase{
		repo:  repo,
		locks: locks,
	}
}

// PostMessage records a message on a case. It snapshots the case's
// LastMessage preview and increments the unread counter of every
// participant except the author. Who may post is checked by the calling
// layer.
func (uc *MessageUseCase) PostMessage(ctx context.Context, caseID int64, author model.Actor, body string) (*model.Message, error) {
	if body == "" {
		return nil, goerr.Wrap(ErrEmptyMessage, "message body is required", goerr.V(CaseIDKey, caseID))
	}

	unlock := uc.locks.Lock(caseID)
	defer unlock()

	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	now := time.Now().UTC()
	msg := &model.Message{
		ID:         uuid.NewString(),
		CaseID:     caseID,
		AuthorID:   author.ID,
		AuthorRole: author.Role,
		Body:       body,
		CreatedAt:  now,
	}

	if err := uc.repo.Message().Append(ctx, msg); err != nil {
		return nil, goerr.Wrap(err, "failed to store message", goerr.V(CaseIDKey, caseID))
	}

	c.LastMessage = &model.MessagePreview{
		At:       now,
		AuthorID: author.ID,
		Preview:  msg.Preview(),
	}
	if c.UnreadCounts == nil {
		c.UnreadCounts = make(map[string]int)
	}
	for _, participant := range c.Participants() {
		if participant == author.ID {
			continue
		}
		c.UnreadCounts[participant]++
	}
	c.UpdatedAt = now

	if _, err := uc.repo.Case().Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to update case after message",
			goerr.V("orphaned_message_id", msg.ID),
			goerr.V(CaseIDKey, caseID))
	}

	return msg, nil
}

// MarkRead acknowledges all messages on the case for the reader, resetting
// their unread counter to zero. Idempotent: unknown identities and
// already-zero counters succeed.
func (uc *MessageUseCase) MarkRead(ctx context.Context, caseID int64, readerID string) error {
	unlock := uc.locks.Lock(caseID)
	defer unlock()

	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		return goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	if c.UnreadCounts == nil {
		c.UnreadCounts = make(map[string]int)
	}
	c.UnreadCounts[readerID] = 0

	if _, err := uc.repo.Case().Update(ctx, c); err != nil {
		return goerr.Wrap(err, "failed to save read acknowledgement", goerr.V(CaseIDKey, caseID))
	}

	return nil
}

// ListMessages returns all messages on the case in ascending creation
// order
func (uc *MessageUseCase) ListMessages(ctx context.Context, caseID int64) ([]*model.Message, error) {
	if _, err := uc.repo.Case().Get(ctx, caseID); err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	messages, err := uc.repo.Message().ListByCase(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list messages", goerr.V(CaseIDKey, caseID))
	}

	return messages, nil
}
