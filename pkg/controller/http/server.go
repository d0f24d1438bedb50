package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hita/aedip-telemedicina/pkg/usecase"
	"github.com/hita/aedip-telemedicina/pkg/utils/errutil"
	"github.com/hita/aedip-telemedicina/pkg/utils/logging"
)

// Server is the REST surface of the service. Identity and role arrive
// pre-resolved in gateway headers; see actorMiddleware.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()
	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/cases", func(r chi.Router) {
		r.Use(actorMiddleware)

		r.Get("/", s.listCases)
		r.Post("/", s.createCase)
		r.Get("/hash/{hashID}", s.getCaseByHashID)

		r.Route("/{caseID}", func(r chi.Router) {
			r.Get("/", s.getCase)
			r.Get("/transitions", s.listTransitions)
			r.Patch("/status", s.changeStatus)
			r.Patch("/assignment", s.assignExpert)
			r.Get("/messages", s.listMessages)
			r.Post("/messages", s.postMessage)
			r.Post("/read", s.markRead)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err.Error())
	}
}

// respondError maps use case errors onto HTTP statuses
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCaseNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrMissingReason), errors.Is(err, usecase.ErrEmptyMessage):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTransition):
		errutil.HandleHTTP(ctx, w, err, http.StatusConflict)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}
