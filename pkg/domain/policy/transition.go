package policy

import (
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// ReasonAutoAssigned is the fixed change reason recorded when assigning an
// expert moves a new case into review. It is not part of any reason
// catalog.
const ReasonAutoAssigned = "Expert auto-assigned"

// transitions maps (role, current status) to the statuses that role may
// move a case into. Absent pairs are forbidden. The coordinator has no
// rows: it acts on cases through assignment only.
var transitions = map[types.Role]map[types.CaseStatus][]types.CaseStatus{
	types.RoleClinician: {
		types.CaseStatusNew:      {types.CaseStatusCancelled, types.CaseStatusResolved},
		types.CaseStatusInReview: {types.CaseStatusCancelled, types.CaseStatusResolved},
	},
	types.RoleExpert: {
		types.CaseStatusInReview:  {types.CaseStatusResolved, types.CaseStatusCancelled},
		types.CaseStatusResolved:  {types.CaseStatusInReview},
		types.CaseStatusCancelled: {types.CaseStatusInReview},
	},
}

// AllowedTransitions returns the statuses role may move a case into from
// the given status. The returned slice is a copy.
func AllowedTransitions(role types.Role, from types.CaseStatus) []types.CaseStatus {
	targets := transitions[role][from]
	out := make([]types.CaseStatus, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether the (role, from, to) triple is in the
// transition table.
func CanTransition(role types.Role, from, to types.CaseStatus) bool {
	for _, target := range transitions[role][from] {
		if target == to {
			return true
		}
	}
	return false
}

// ReasonRequired reports whether a transition into target must carry a
// change reason. Every transition into a terminal status requires one, as
// does reopening into review. The role does not change the requirement;
// it selects which catalog the UI offers.
func ReasonRequired(_ types.Role, target types.CaseStatus) bool {
	switch target {
	case types.CaseStatusResolved, types.CaseStatusCancelled, types.CaseStatusInReview:
		return true
	default:
		return false
	}
}
