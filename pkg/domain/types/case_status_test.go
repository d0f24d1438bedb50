package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

func TestCaseStatusIsValid(t *testing.T) {
	for _, status := range types.AllCaseStatuses() {
		gt.Bool(t, status.IsValid()).True()
	}

	gt.Bool(t, types.CaseStatus("").IsValid()).False()
	gt.Bool(t, types.CaseStatus("OPEN").IsValid()).False()
	gt.Bool(t, types.CaseStatus("new").IsValid()).False()
}

func TestCaseStatusIsTerminal(t *testing.T) {
	gt.Bool(t, types.CaseStatusNew.IsTerminal()).False()
	gt.Bool(t, types.CaseStatusInReview.IsTerminal()).False()
	gt.Bool(t, types.CaseStatusResolved.IsTerminal()).True()
	gt.Bool(t, types.CaseStatusCancelled.IsTerminal()).True()
}

func TestCaseStatusTriageRank(t *testing.T) {
	gt.Number(t, types.CaseStatusNew.TriageRank()).Equal(3)
	gt.Number(t, types.CaseStatusInReview.TriageRank()).Equal(2)
	gt.Number(t, types.CaseStatusResolved.TriageRank()).Equal(1)
	gt.Number(t, types.CaseStatusCancelled.TriageRank()).Equal(1)
	gt.Number(t, types.CaseStatus("bogus").TriageRank()).Equal(0)
}

func TestParseCaseStatus(t *testing.T) {
	status, err := types.ParseCaseStatus("IN_REVIEW")
	gt.NoError(t, err).Required()
	gt.Value(t, status).Equal(types.CaseStatusInReview)

	_, err = types.ParseCaseStatus("in_review")
	gt.Error(t, err)

	_, err = types.ParseCaseStatus("")
	gt.Error(t, err)
}
