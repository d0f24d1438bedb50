package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
	"github.com/hita/aedip-telemedicina/pkg/domain/model"
	"github.com/hita/aedip-telemedicina/pkg/domain/policy"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

const (
	hashIDLength  = 4
	hashIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	// hashIDMaxAttempts bounds the retry loop when a freshly generated
	// hash ID collides with an existing case
	hashIDMaxAttempts = 10
)

// CaseUseCase owns the case directory and the review lifecycle
type CaseUseCase struct {
	repo    interfaces.Repository
	locks   *caseLocker
	catalog policy.Catalog
}

func NewCaseUseCase(repo interfaces.Repository, locks *caseLocker) *CaseUseCase {
	return &CaseUseCase{
		repo:    repo,
		locks:   locks,
		catalog: policy.DefaultCatalog(),
	}
}

// ReasonCatalog returns the canned reasons offered to role for a target
// status. Advisory: ChangeStatus accepts any non-empty reason.
func (uc *CaseUseCase) ReasonCatalog(role types.Role, target types.CaseStatus) []string {
	return uc.catalog.Reasons(role, target)
}

// CreateCase registers a new case draft. The clinical payload is taken as
// given; lifecycle fields are initialized here regardless of what the
// draft carries.
func (uc *CaseUseCase) CreateCase(ctx context.Context, draft *model.Case, createdBy string) (*model.Case, error) {
	if draft.Title == "" {
		return nil, goerr.New("case title is required")
	}
	if createdBy == "" {
		return nil, goerr.New("case creator identity is required")
	}

	hashID, err := uc.newUniqueHashID(ctx)
	if err != nil {
		return nil, err
	}

	newCase := &model.Case{
		HashID:       hashID,
		Title:        draft.Title,
		Sex:          draft.Sex,
		AgeRange:     draft.AgeRange,
		Description:  draft.Description,
		Query:        draft.Query,
		Urgency:      draft.Urgency,
		Status:       types.CaseStatusNew,
		CreatedBy:    createdBy,
		History:      []model.StatusChange{},
		UnreadCounts: map[string]int{},
	}

	created, err := uc.repo.Case().Create(ctx, newCase)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}

	return created, nil
}

func (uc *CaseUseCase) newUniqueHashID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < hashIDMaxAttempts; attempt++ {
		hashID, err := newHashID()
		if err != nil {
			return "", err
		}

		existing, err := uc.repo.Case().GetByHashID(ctx, hashID)
		if err != nil {
			return "", goerr.Wrap(err, "failed to check hash ID uniqueness", goerr.V("hash_id", hashID))
		}
		if existing == nil {
			return hashID, nil
		}
	}
	return "", goerr.New("could not generate a unique hash ID", goerr.V("attempts", hashIDMaxAttempts))
}

func newHashID() (string, error) {
	buf := make([]byte, hashIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to read random bytes for hash ID")
	}
	for i, b := range buf {
		buf[i] = hashIDCharset[int(b)%len(hashIDCharset)]
	}
	return string(buf), nil
}

// GetCase retrieves a case by numeric ID
func (uc *CaseUseCase) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
	}
	return c, nil
}

// GetCaseByHashID retrieves a case by its short display ID
func (uc *CaseUseCase) GetCaseByHashID(ctx context.Context, hashID string) (*model.Case, error) {
	c, err := uc.repo.Case().GetByHashID(ctx, hashID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up case by hash ID", goerr.V("hash_id", hashID))
	}
	if c == nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V("hash_id", hashID))
	}
	return c, nil
}

// ListCases returns all cases in the requested order
func (uc *CaseUseCase) ListCases(ctx context.Context, order types.CaseOrder) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx, interfaces.WithOrder(order))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

// ListCasesByCreator returns the cases submitted by identity, in the
// requested order
func (uc *CaseUseCase) ListCasesByCreator(ctx context.Context, identity string, order types.CaseOrder) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx, interfaces.WithCreator(identity), interfaces.WithOrder(order))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases by creator", goerr.V("creator", identity))
	}
	return cases, nil
}

// ChangeStatus moves a case to target on behalf of the acting role. The
// transition table and the reason requirement are validated before any
// field changes; a failed call leaves the case untouched.
func (uc *CaseUseCase) ChangeStatus(ctx context.Context, caseID int64, actor model.Actor, target types.CaseStatus, reason string) (*model.Case, error) {
	unlock := uc.locks.Lock(caseID)
	defer unlock()

	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	if !policy.CanTransition(actor.Role, c.Status, target) {
		return nil, goerr.Wrap(ErrInvalidTransition, "status transition rejected",
			goerr.V(CaseIDKey, caseID),
			goerr.V(ActorIDKey, actor.ID),
			goerr.V(RoleKey, actor.Role),
			goerr.V("from", c.Status),
			goerr.V("to", target))
	}

	if policy.ReasonRequired(actor.Role, target) && reason == "" {
		return nil, goerr.Wrap(ErrMissingReason, "transition requires a change reason",
			goerr.V(CaseIDKey, caseID),
			goerr.V("to", target))
	}

	applyStatusChange(c, target, reason, time.Now().UTC())

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save status change", goerr.V(CaseIDKey, caseID))
	}

	return updated, nil
}

// AssignExpert sets or clears the case's assigned specialist. An empty
// expertID unassigns. Reviewers pass their own identity; coordinators may
// pass anyone's. That convention is enforced by the calling layer, not
// here.
//
// Assigning an expert to a New case moves it into review with a fixed
// change reason. Unassigning an in-review case moves it back to New only
// while the case has seen no review activity (never reopened, no messages
// posted). Terminal cases keep their status either way.
func (uc *CaseUseCase) AssignExpert(ctx context.Context, caseID int64, actor model.Actor, expertID string) (*model.Case, error) {
	unlock := uc.locks.Lock(caseID)
	defer unlock()

	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	now := time.Now().UTC()

	if expertID != "" {
		c.AssignedExpert = expertID
		if c.Status == types.CaseStatusNew {
			applyStatusChange(c, types.CaseStatusInReview, policy.ReasonAutoAssigned, now)
		}
	} else {
		c.AssignedExpert = ""
		if c.Status == types.CaseStatusInReview && !c.Reopened && c.LastMessage == nil {
			applyStatusChange(c, types.CaseStatusNew, "", now)
		}
	}
	c.UpdatedAt = now

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save assignment", goerr.V(CaseIDKey, caseID))
	}

	return updated, nil
}

// applyStatusChange mutates the case's status fields and appends the
// history entry. Every status mutation in the service goes through here
// so the history chain stays contiguous.
func applyStatusChange(c *model.Case, target types.CaseStatus, reason string, at time.Time) {
	from := c.Status
	c.Status = target
	c.ChangeReason = reason
	c.History = append(c.History, model.StatusChange{
		From:   from,
		To:     target,
		Reason: reason,
		At:     at,
	})
	if from.IsTerminal() && target == types.CaseStatusInReview {
		c.Reopened = true
	}
	c.UpdatedAt = at
}
