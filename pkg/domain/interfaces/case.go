package interfaces

import (
	"context"

	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

// CaseRepository defines the interface for Case data access. Mutations are
// whole-aggregate: Update persists the case exactly as given (except
// CreatedAt, which is preserved, and UpdatedAt, which is bumped), so the
// caller is responsible for serializing load-mutate-save cycles per case.
type CaseRepository interface {
	// Create creates a new case with auto-generated numeric ID and
	// timestamps
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by numeric ID
	Get(ctx context.Context, id int64) (*model.Case, error)

	// GetByHashID retrieves a case by its short display ID.
	// Returns nil, nil if no case has the given hash ID.
	GetByHashID(ctx context.Context, hashID string) (*model.Case, error)

	// List retrieves cases with optional filtering and ordering
	List(ctx context.Context, opts ...ListCaseOption) ([]*model.Case, error)

	// Update updates an existing case
	Update(ctx context.Context, c *model.Case) (*model.Case, error)

	// Delete deletes a case by numeric ID
	Delete(ctx context.Context, id int64) error
}
