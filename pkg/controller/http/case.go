package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hita/aedip-telemedicina/pkg/domain/model"
	"github.com/hita/aedip-telemedicina/pkg/domain/policy"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

func caseIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "caseID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid case ID", goerr.V("raw", raw))
	}
	return id, nil
}

func orderFromRequest(r *http.Request) types.CaseOrder {
	if r.URL.Query().Get("order") == "urgency" {
		return types.CaseOrderTriageUrgency
	}
	return types.CaseOrderTriage
}

// listCases returns the case list for the acting role. Clinicians see
// their own submissions; experts and coordinators see everything.
func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := model.ActorFromContext(ctx)
	order := orderFromRequest(r)

	var cases []*model.Case
	var err error
	if actor.Role == types.RoleClinician {
		cases, err = s.uc.Case.ListCasesByCreator(ctx, actor.ID, order)
	} else {
		cases, err = s.uc.Case.ListCases(ctx, order)
	}
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponses(cases))
}

type createCaseRequest struct {
	Title       string `json:"title"`
	Sex         string `json:"sex"`
	AgeRange    string `json:"ageRange"`
	Description string `json:"description"`
	Query       string `json:"query"`
	Urgency     string `json:"urgency"`
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := model.ActorFromContext(ctx)

	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	urgency := types.Urgency(req.Urgency)
	if req.Urgency != "" && !urgency.IsValid() {
		http.Error(w, "invalid urgency", http.StatusBadRequest)
		return
	}

	draft := &model.Case{
		Title:       req.Title,
		Sex:         req.Sex,
		AgeRange:    req.AgeRange,
		Description: req.Description,
		Query:       req.Query,
		Urgency:     urgency,
	}

	created, err := s.uc.Case.CreateCase(ctx, draft, actor.ID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toCaseResponse(created))
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid case ID", http.StatusBadRequest)
		return
	}

	c, err := s.uc.Case.GetCase(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

// getCaseByHashID resolves the short display ID printed on referrals and
// shared out-of-band
func (s *Server) getCaseByHashID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := s.uc.Case.GetCaseByHashID(ctx, chi.URLParam(r, "hashID"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

type transitionOption struct {
	Status  string   `json:"status"`
	Reasons []string `json:"reasons"`
}

// listTransitions returns the statuses the acting role may move the case
// into, each with its advisory reason catalog. Used to populate the
// status-change picker.
func (s *Server) listTransitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := model.ActorFromContext(ctx)

	id, err := caseIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid case ID", http.StatusBadRequest)
		return
	}

	c, err := s.uc.Case.GetCase(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	targets := policy.AllowedTransitions(actor.Role, c.Status)
	options := make([]transitionOption, 0, len(targets))
	for _, target := range targets {
		options = append(options, transitionOption{
			Status:  target.String(),
			Reasons: s.uc.Case.ReasonCatalog(actor.Role, target),
		})
	}

	respondJSON(ctx, w, http.StatusOK, options)
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (s *Server) changeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := model.ActorFromContext(ctx)

	id, err := caseIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid case ID", http.StatusBadRequest)
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	target, err := types.ParseCaseStatus(req.Status)
	if err != nil {
		http.Error(w, "invalid target status", http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Case.ChangeStatus(ctx, id, actor, target, req.Reason)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(updated))
}

type assignExpertRequest struct {
	Expert *string `json:"expert"`
}

// assignExpert sets or clears the case assignment. Experts may only
// assign or unassign themselves; that constraint is enforced here, at the
// trust boundary, by substituting the actor's own identity. Coordinators
// may name any expert.
func (s *Server) assignExpert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := model.ActorFromContext(ctx)

	id, err := caseIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid case ID", http.StatusBadRequest)
		return
	}

	var req assignExpertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var expertID string
	switch actor.Role {
	case types.RoleExpert:
		if req.Expert != nil {
			expertID = actor.ID
		}
	case types.RoleCoordinator:
		if req.Expert != nil {
			expertID = *req.Expert
		}
	default:
		http.Error(w, "role may not change assignment", http.StatusForbidden)
		return
	}

	updated, err := s.uc.Case.AssignExpert(ctx, id, actor, expertID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(updated))
}
