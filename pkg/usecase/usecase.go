package usecase

import (
	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
	"github.com/hita/aedip-telemedicina/pkg/domain/policy"
)

// UseCases bundles the public operations of the service
type UseCases struct {
	Case    *CaseUseCase
	Message *MessageUseCase
}

// Option configures the use case bundle
type Option func(*UseCases)

// WithReasonCatalog replaces the built-in reason catalog, e.g. with one
// loaded from configuration
func WithReasonCatalog(catalog policy.Catalog) Option {
	return func(u *UseCases) {
		u.Case.catalog = catalog
	}
}

// New builds the use case bundle. Both use cases share one per-case
// locker because messages and status changes mutate the same aggregate.
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	locks := newCaseLocker()

	u := &UseCases{
		Case:    NewCaseUseCase(repo, locks),
		Message: NewMessageUseCase(repo, locks),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
