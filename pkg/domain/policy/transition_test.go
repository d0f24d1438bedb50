package policy_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hita/aedip-telemedicina/pkg/domain/policy"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

func TestCanTransitionTable(t *testing.T) {
	allowed := map[types.Role]map[types.CaseStatus][]types.CaseStatus{
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

	// Exhaust every (role, from, to) triple against the expected table
	for _, role := range types.AllRoles() {
		for _, from := range types.AllCaseStatuses() {
			for _, to := range types.AllCaseStatuses() {
				want := false
				for _, target := range allowed[role][from] {
					if target == to {
						want = true
					}
				}
				got := policy.CanTransition(role, from, to)
				if got != want {
					t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", role, from, to, got, want)
				}
			}
		}
	}
}

func TestCoordinatorHasNoTransitions(t *testing.T) {
	for _, from := range types.AllCaseStatuses() {
		gt.Array(t, policy.AllowedTransitions(types.RoleCoordinator, from)).Length(0)
	}
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	targets := policy.AllowedTransitions(types.RoleClinician, types.CaseStatusNew)
	gt.Array(t, targets).Length(2)

	targets[0] = types.CaseStatusNew

	again := policy.AllowedTransitions(types.RoleClinician, types.CaseStatusNew)
	gt.Value(t, again[0]).Equal(types.CaseStatusCancelled)
}

func TestReasonRequired(t *testing.T) {
	for _, role := range types.AllRoles() {
		gt.Bool(t, policy.ReasonRequired(role, types.CaseStatusResolved)).True()
		gt.Bool(t, policy.ReasonRequired(role, types.CaseStatusCancelled)).True()
		gt.Bool(t, policy.ReasonRequired(role, types.CaseStatusInReview)).True()
		gt.Bool(t, policy.ReasonRequired(role, types.CaseStatusNew)).False()
	}
}
