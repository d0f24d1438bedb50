package types

import "fmt"

// CaseOrder names a case-list ordering policy. Both policies surface
// unresolved work first; they differ in how ties inside a status bucket are
// broken.
type CaseOrder string

const (
	// CaseOrderTriage sorts by status bucket, then most-recently-updated.
	// This is the default ordering for operator dashboards.
	CaseOrderTriage CaseOrder = "TRIAGE"

	// CaseOrderTriageUrgency sorts by status bucket, then urgency
	// (High > Medium > Low), then most-recently-updated.
	CaseOrderTriageUrgency CaseOrder = "TRIAGE_URGENCY"
)

// IsValid checks if the case order is valid
func (o CaseOrder) IsValid() bool {
	switch o {
	case CaseOrderTriage, CaseOrderTriageUrgency:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case order
func (o CaseOrder) String() string {
	return string(o)
}

// ParseCaseOrder parses a string into a CaseOrder
func ParseCaseOrder(s string) (CaseOrder, error) {
	order := CaseOrder(s)
	if !order.IsValid() {
		return "", fmt.Errorf("invalid case order: %s", s)
	}
	return order, nil
}
