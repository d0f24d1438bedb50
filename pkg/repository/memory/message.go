package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages map[int64][]*model.Message
}

var _ interfaces.MessageRepository = &messageRepository{}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[int64][]*model.Message),
	}
}

func copyMessage(m *model.Message) *model.Message {
	copied := *m
	return &copied
}

func (r *messageRepository) Append(ctx context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[msg.CaseID] = append(r.messages[msg.CaseID], copyMessage(msg))
	return nil
}

func (r *messageRepository) ListByCase(ctx context.Context, caseID int64) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.messages[caseID]
	result := make([]*model.Message, 0, len(msgs))
	for _, m := range msgs {
		result = append(result, copyMessage(m))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
