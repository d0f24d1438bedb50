package types

import "fmt"

// CaseStatus represents the review lifecycle state of a clinical case
type CaseStatus string

const (
	CaseStatusNew       CaseStatus = "NEW"
	CaseStatusInReview  CaseStatus = "IN_REVIEW"
	CaseStatusResolved  CaseStatus = "RESOLVED"
	CaseStatusCancelled CaseStatus = "CANCELLED"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusNew,
		CaseStatusInReview,
		CaseStatusResolved,
		CaseStatusCancelled,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusNew,
		CaseStatusInReview,
		CaseStatusResolved,
		CaseStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status has no forward progression other
// than reopening.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusResolved || s == CaseStatusCancelled
}

// TriageRank returns the sort bucket for case listings. Unresolved work
// ranks above terminal statuses; Resolved and Cancelled are equal-ranked.
func (s CaseStatus) TriageRank() int {
	switch s {
	case CaseStatusNew:
		return 3
	case CaseStatusInReview:
		return 2
	case CaseStatusResolved, CaseStatusCancelled:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
