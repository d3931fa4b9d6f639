package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/todo-api/internal/auth"
	"github.com/BuzzLyutic/todo-api/internal/repo/sqlite"
	"github.com/BuzzLyutic/todo-api/internal/service"
)

const testSecret = "test-secret"

type testAPI struct {
	t       *testing.T
	handler http.Handler
	issuer  *auth.JWTIssuer
}

// newTestAPI поднимает весь роутер поверх временной SQLite базы
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Init(context.Background(), db))

	logger := zap.NewNop()
	issuer := auth.NewJWTIssuer(testSecret, 15*time.Minute)
	authService := service.NewAuthService(sqlite.NewUserRepo(db), auth.NewBcryptHasher(bcrypt.MinCost), issuer)
	taskService := service.NewTaskService(sqlite.NewTaskRepo(db), logger)

	router := NewRouter(
		NewAuthHandler(authService, logger, true),
		NewTaskHandler(taskService, logger),
		authService,
		logger,
	)
	return &testAPI{t: t, handler: router, issuer: issuer}
}

func (a *testAPI) do(method, path string, body any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// login регистрирует пользователя и возвращает его токен
func (a *testAPI) login(username, password string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/register", map[string]string{"username": username, "password": password})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/login", map[string]string{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == AccessTokenCookie {
			return c.Value
		}
	}
	a.t.Fatal("login did not set access_token cookie")
	return ""
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	}
}

func withHeader(key, value string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}
