package interfaces

import "github.com/hita/aedip-telemedicina/pkg/domain/types"

// ListCaseOption is a functional option for filtering and ordering cases
// in List
type ListCaseOption func(*listCaseConfig)

type listCaseConfig struct {
	creator *string
	order   types.CaseOrder
}

// WithCreator filters cases to those created by the given identity
func WithCreator(identity string) ListCaseOption {
	return func(c *listCaseConfig) {
		c.creator = &identity
	}
}

// WithOrder selects the list ordering policy. The default is
// types.CaseOrderTriage.
func WithOrder(order types.CaseOrder) ListCaseOption {
	return func(c *listCaseConfig) {
		c.order = order
	}
}

// BuildListCaseConfig builds a listCaseConfig from options
func BuildListCaseConfig(opts ...ListCaseOption) *listCaseConfig {
	cfg := &listCaseConfig{order: types.CaseOrderTriage}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Creator returns the creator filter value, or nil if not set
func (c *listCaseConfig) Creator() *string {
	return c.creator
}

// Order returns the selected ordering policy
func (c *listCaseConfig) Order() types.CaseOrder {
	return c.order
}
