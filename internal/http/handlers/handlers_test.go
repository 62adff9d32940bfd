package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/config"
	"github.com/hongminglow/task-tracker/internal/middleware"
	"github.com/hongminglow/task-tracker/internal/models"
	"github.com/hongminglow/task-tracker/internal/service"
	"github.com/hongminglow/task-tracker/internal/storage/memory"
)

type testAPI struct {
	handler http.Handler
	store   *memory.Store
	tokens  *auth.TokenManager
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTIssuer:  "tests",
		AdminKey:   "2134",
		BcryptCost: bcrypt.MinCost,
	}
	store := memory.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	requireAuth := middleware.RequireAuth(tokens, store)

	r := chi.NewRouter()
	NewAuthHandler(store, tokens, cfg).Register(r, requireAuth)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		NewTaskHandler(service.NewTaskService(store)).Register(r)
		NewCommentHandler(service.NewCommentService(store, store)).Register(r)
	})
	return testAPI{handler: r, store: store, tokens: tokens}
}

// do sends a JSON request and decodes the JSON response into out when non-nil.
func (a testAPI) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out), "body for %s %s", method, path)
	}
	return rec.Code
}

type authBody struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
	Error   string      `json:"error"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (a testAPI) signup(t *testing.T, email, role string, extra map[string]string) authBody {
	t.Helper()
	payload := map[string]string{"email": email, "password": "secret1", "role": role}
	for k, v := range extra {
		payload[k] = v
	}
	var out authBody
	status := a.do(t, http.MethodPost, "/api/auth/signup", "", payload, &out)
	require.Equal(t, http.StatusCreated, status, out.Error)
	return out
}
