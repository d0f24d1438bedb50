package model

import (
	"sort"

	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// SortCases orders cases in place according to the named policy. The sort
// is stable so equal cases keep their incoming order.
func SortCases(cases []*Case, order types.CaseOrder) {
	sort.SliceStable(cases, func(i, j int) bool {
		return lessCases(cases[i], cases[j], order)
	})
}

func lessCases(a, b *Case, order types.CaseOrder) bool {
	if ra, rb := a.Status.TriageRank(), b.Status.TriageRank(); ra != rb {
		return ra > rb
	}
	if order == types.CaseOrderTriageUrgency {
		if ua, ub := a.Urgency.Rank(), b.Urgency.Rank(); ua != ub {
			return ua > ub
		}
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
