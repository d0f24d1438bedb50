package http

import (
	"encoding/json"
	"net/http"

	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

// canAccessMessages gates the case chat: the creator, the assigned
// expert, and coordinators may read and post.
func canAccessMessages(c *model.Case, actor model.Actor) bool {
	return c.IsParticipant(actor.ID) || actor.IsCoordinator()
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
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
	if !canAccessMessages(c, actor) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	messages, err := s.uc.Message.ListMessages(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toMessageResponses(messages))
}

type postMessageRequest struct {
	Body string `json:"body"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := model.ActorFromContext(ctx)

	id, err := caseIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid case ID", http.StatusBadRequest)
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := s.uc.Case.GetCase(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	if !canAccessMessages(c, actor) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	msg, err := s.uc.Message.PostMessage(ctx, id, actor, req.Body)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toMessageResponse(msg))
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
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
	if !canAccessMessages(c, actor) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	if err := s.uc.Message.MarkRead(ctx, id, actor.ID); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
