package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/hita/aedip-telemedicina/pkg/controller/http"
	"github.com/hita/aedip-telemedicina/pkg/domain/model"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
	"github.com/hita/aedip-telemedicina/pkg/repository/memory"
	"github.com/hita/aedip-telemedicina/pkg/usecase"
)

type testClient struct {
	t   *testing.T
	srv *httpctrl.Server
	uc  *usecase.UseCases
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	uc := usecase.New(memory.New())
	return &testClient{t: t, srv: httpctrl.New(uc), uc: uc}
}

func (c *testClient) do(method, path string, actor *model.Actor, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(c.t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if actor != nil {
		req.Header.Set("X-Actor-Id", actor.ID)
		req.Header.Set("X-Actor-Role", actor.Role.String())
	}

	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	return rec
}

func (c *testClient) createCase(actor model.Actor) map[string]any {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/api/cases", &actor, map[string]any{
		"title":   "Recurrent sinopulmonary infections",
		"query":   "¿Se recomienda iniciar estudio inmunológico?",
		"urgency": "HIGH",
	})
	gt.Number(c.t, rec.Code).Equal(http.StatusCreated)

	var resp map[string]any
	gt.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	return resp
}

var (
	clinicianActor   = model.Actor{ID: "dr-garcia", Role: types.RoleClinician}
	expertActor      = model.Actor{ID: "dr-lopez", Role: types.RoleExpert}
	coordinatorActor = model.Actor{ID: "coord-ruiz", Role: types.RoleCoordinator}
)

func TestHealthEndpoint(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodGet, "/health", nil, nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
}

func TestActorAuthentication(t *testing.T) {
	c := newTestClient(t)

	t.Run("missing headers are rejected", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases", nil, nil)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		bogus := model.Actor{ID: "x", Role: types.Role("SUPERUSER")}
		rec := c.do(http.MethodGet, "/api/cases", &bogus, nil)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestCreateCaseEndpoint(t *testing.T) {
	c := newTestClient(t)

	t.Run("creates with lifecycle defaults", func(t *testing.T) {
		resp := c.createCase(clinicianActor)

		gt.Value(t, resp["status"]).Equal("NEW")
		gt.Value(t, resp["createdBy"]).Equal(clinicianActor.ID)
		gt.Value(t, resp["assignedExpert"]).Nil()

		hashID, ok := resp["hashId"].(string)
		gt.Bool(t, ok).True()
		gt.Number(t, len(hashID)).Equal(4)
	})

	t.Run("rejects invalid urgency", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/cases", &clinicianActor, map[string]any{
			"title":   "x",
			"urgency": "CRITICAL",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/cases", bytes.NewReader([]byte("{")))
		req.Header.Set("X-Actor-Id", clinicianActor.ID)
		req.Header.Set("X-Actor-Role", clinicianActor.Role.String())
		rec := httptest.NewRecorder()
		c.srv.ServeHTTP(rec, req)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestListCasesEndpoint(t *testing.T) {
	c := newTestClient(t)

	c.createCase(clinicianActor)

	other := model.Actor{ID: "dr-smith", Role: types.RoleClinician}
	c.createCase(other)

	t.Run("clinician sees only their own cases", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases", &clinicianActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp).Length(1)
		gt.Value(t, resp[0]["createdBy"]).Equal(clinicianActor.ID)
	})

	t.Run("expert sees all cases", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases", &expertActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp).Length(2)
	})

	t.Run("coordinator sees all cases", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases?order=urgency", &coordinatorActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp).Length(2)
	})
}

func TestGetCaseEndpoint(t *testing.T) {
	c := newTestClient(t)
	created := c.createCase(clinicianActor)
	id := int64(created["id"].(float64))

	t.Run("returns the case", func(t *testing.T) {
		rec := c.do(http.MethodGet, fmt.Sprintf("/api/cases/%d", id), &expertActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("resolves by hash ID", func(t *testing.T) {
		hashID := created["hashId"].(string)
		rec := c.do(http.MethodGet, "/api/cases/hash/"+hashID, &expertActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, int64(resp["id"].(float64))).Equal(id)
	})

	t.Run("unknown hash ID yields 404", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases/hash/none", &expertActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("unknown ID yields 404", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases/424242", &expertActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("non-numeric ID yields 400", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/cases/abcd", &expertActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestChangeStatusEndpoint(t *testing.T) {
	c := newTestClient(t)

	t.Run("clinician resolves own case", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/status", id), &clinicianActor, map[string]any{
			"status": "RESOLVED",
			"reason": "Respuesta recibida y aplicada",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["status"]).Equal("RESOLVED")
		gt.Value(t, resp["changeReason"]).Equal("Respuesta recibida y aplicada")
	})

	t.Run("forbidden transition yields 409", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/status", id), &clinicianActor, map[string]any{
			"status": "IN_REVIEW",
			"reason": "razón",
		})
		gt.Number(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("missing reason yields 400", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/status", id), &clinicianActor, map[string]any{
			"status": "RESOLVED",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown target status yields 400", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/status", id), &clinicianActor, map[string]any{
			"status": "ARCHIVED",
			"reason": "razón",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestListTransitionsEndpoint(t *testing.T) {
	c := newTestClient(t)
	created := c.createCase(clinicianActor)
	id := int64(created["id"].(float64))

	t.Run("clinician options on a new case", func(t *testing.T) {
		rec := c.do(http.MethodGet, fmt.Sprintf("/api/cases/%d/transitions", id), &clinicianActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []struct {
			Status  string   `json:"status"`
			Reasons []string `json:"reasons"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp).Length(2)
		for _, option := range resp {
			gt.Number(t, len(option.Reasons)).GreaterOrEqual(1)
		}
	})

	t.Run("coordinator has no options", func(t *testing.T) {
		rec := c.do(http.MethodGet, fmt.Sprintf("/api/cases/%d/transitions", id), &coordinatorActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp).Length(0)
	})
}

func TestAssignExpertEndpoint(t *testing.T) {
	c := newTestClient(t)

	t.Run("expert self-assigns regardless of named expert", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		// The named expert is ignored; the actor's own identity wins
		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/assignment", id), &expertActor, map[string]any{
			"expert": "dr-someone-else",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["assignedExpert"]).Equal(expertActor.ID)
		gt.Value(t, resp["status"]).Equal("IN_REVIEW")
	})

	t.Run("coordinator names any expert", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/assignment", id), &coordinatorActor, map[string]any{
			"expert": "dr-marin",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["assignedExpert"]).Equal("dr-marin")
	})

	t.Run("null expert unassigns", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/assignment", id), &expertActor, map[string]any{
			"expert": expertActor.ID,
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/assignment", id), &expertActor, map[string]any{
			"expert": nil,
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["assignedExpert"]).Nil()
		gt.Value(t, resp["status"]).Equal("NEW")
	})

	t.Run("clinician may not change assignment", func(t *testing.T) {
		created := c.createCase(clinicianActor)
		id := int64(created["id"].(float64))

		rec := c.do(http.MethodPatch, fmt.Sprintf("/api/cases/%d/assignment", id), &clinicianActor, map[string]any{
			"expert": "dr-lopez",
		})
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})
}

func TestMessageEndpoints(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created := c.createCase(clinicianActor)
	id := int64(created["id"].(float64))

	_, err := c.uc.Case.AssignExpert(ctx, id, expertActor, expertActor.ID)
	gt.NoError(t, err).Required()

	t.Run("participant posts and lists messages", func(t *testing.T) {
		rec := c.do(http.MethodPost, fmt.Sprintf("/api/cases/%d/messages", id), &expertActor, map[string]any{
			"body": "Sugiero medir subclases de IgG",
		})
		gt.Number(t, rec.Code).Equal(http.StatusCreated)

		rec = c.do(http.MethodGet, fmt.Sprintf("/api/cases/%d/messages", id), &clinicianActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp).Length(1)
		gt.Value(t, resp[0]["authorId"]).Equal(expertActor.ID)
		gt.Value(t, resp[0]["authorRole"]).Equal("EXPERT")
	})

	t.Run("coordinator may read the thread", func(t *testing.T) {
		rec := c.do(http.MethodGet, fmt.Sprintf("/api/cases/%d/messages", id), &coordinatorActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		outsider := model.Actor{ID: "dr-nunez", Role: types.RoleExpert}
		rec := c.do(http.MethodGet, fmt.Sprintf("/api/cases/%d/messages", id), &outsider, nil)
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)

		rec = c.do(http.MethodPost, fmt.Sprintf("/api/cases/%d/messages", id), &outsider, map[string]any{
			"body": "hola",
		})
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("empty body yields 400", func(t *testing.T) {
		rec := c.do(http.MethodPost, fmt.Sprintf("/api/cases/%d/messages", id), &clinicianActor, map[string]any{
			"body": "",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("mark read returns 204 and clears the counter", func(t *testing.T) {
		rec := c.do(http.MethodPost, fmt.Sprintf("/api/cases/%d/read", id), &clinicianActor, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNoContent)

		got, err := c.uc.Case.GetCase(ctx, id)
		gt.NoError(t, err).Required()
		gt.Number(t, got.UnreadCount(clinicianActor.ID)).Equal(0)
	})
}
