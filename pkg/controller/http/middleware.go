package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/hita/aedip-telemedicina/pkg/domain/model"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
	"github.com/hita/aedip-telemedicina/pkg/utils/logging"
)

// Gateway headers carrying the pre-resolved actor. The upstream
// authentication layer sets them after validating the session; the core
// trusts them completely and never re-derives identity or role.
const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// actorMiddleware resolves the acting identity and role from gateway
// headers and attaches them to the request context
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := r.Header.Get(actorIDHeader)
		roleValue := r.Header.Get(actorRoleHeader)
		if actorID == "" || roleValue == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		role, err := types.ParseRole(roleValue)
		if err != nil {
			http.Error(w, "unknown actor role", http.StatusUnauthorized)
			return
		}

		ctx := model.ContextWithActor(r.Context(), model.Actor{ID: actorID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLogger logs one line per request with status and duration
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.From(r.Context()).Info("access",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
