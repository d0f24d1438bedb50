package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[int64]*model.Case
	nextID int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:  make(map[int64]*model.Case),
		nextID: 1,
	}
}

// copyCase creates a deep copy of a case so callers never share mutable
// state with the store
func copyCase(c *model.Case) *model.Case {
	history := make([]model.StatusChange, len(c.History))
	copy(history, c.History)

	var unread map[string]int
	if c.UnreadCounts != nil {
		unread = make(map[string]int, len(c.UnreadCounts))
		for k, v := range c.UnreadCounts {
			unread[k] = v
		}
	}

	var lastMessage *model.MessagePreview
	if c.LastMessage != nil {
		preview := *c.LastMessage
		lastMessage = &preview
	}

	return &model.Case{
		ID:             c.ID,
		HashID:         c.HashID,
		Title:          c.Title,
		Sex:            c.Sex,
		AgeRange:       c.AgeRange,
		Description:    c.Description,
		Query:          c.Query,
		Urgency:        c.Urgency,
		Status:         c.Status,
		AssignedExpert: c.AssignedExpert,
		CreatedBy:      c.CreatedBy,
		ChangeReason:   c.ChangeReason,
		Reopened:       c.Reopened,
		History:        history,
		LastMessage:    lastMessage,
		UnreadCounts:   unread,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCase(c)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.cases[created.ID] = created
	return copyCase(created), nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	return copyCase(c), nil
}

func (r *caseRepository) GetByHashID(ctx context.Context, hashID string) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cases {
		if c.HashID == hashID {
			return copyCase(c), nil
		}
	}
	return nil, nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	r.mu.RLock()
	cases := make([]*model.Case, 0, len(r.cases))
	for _, c := range r.cases {
		if cfg.Creator() != nil && c.CreatedBy != *cfg.Creator() {
			continue
		}
		cases = append(cases, copyCase(c))
	}
	r.mu.RUnlock()

	model.SortCases(cases, cfg.Order())
	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cases[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	updated := copyCase(c)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.cases[updated.ID] = updated
	return copyCase(updated), nil
}

func (r *caseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cases[id]; !exists {
		return goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	delete(r.cases, id)
	return nil
}
