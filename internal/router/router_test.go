package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
	"mnemo-go/internal/config"
	"mnemo-go/internal/events"
	"mnemo-go/internal/repository"
	"mnemo-go/internal/session"
	"mnemo-go/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{
		Server: config.ServerConfig{SessionSecret: "test-secret"},
	}

	log := zap.NewNop()
	blobs := store.NewMemStore()
	repo, err := repository.New(blobs, log, nil)
	require.NoError(t, err)
	ctrl := app.New(repo, session.NewHolder(blobs, log), events.NewBus(log), log, time.Minute)
	t.Cleanup(ctrl.Close)

	return Setup(log, ctrl, blobs)
}

func TestStateEndpointIsPublic(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var state struct {
		CurrentView     string `json:"currentView"`
		IsAuthenticated bool   `json:"isAuthenticated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "home", state.CurrentView)
	assert.False(t, state.IsAuthenticated)
}

func TestStateEndpointExposesNoPasswordHashes(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "$2a$")
	assert.NotContains(t, body, "$2b$")
}

func TestLoginWithoutCSRFTokenIsRejected(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"user","password":"user123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	// Fetch the CSRF token and session cookie.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/csrf", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var csrf struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &csrf))
	require.NotEmpty(t, csrf.Token)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Log in with the token echoed back.
	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"user","password":"user123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", csrf.Token)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	sessionCookies := w2.Result().Cookies()
	if len(sessionCookies) == 0 {
		sessionCookies = cookies
	}

	// The session cookie now opens the authorized routes.
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	for _, c := range sessionCookies {
		req3.AddCookie(c)
	}
	r.ServeHTTP(w3, req3)
	require.Equal(t, http.StatusOK, w3.Code)

	var profile struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &profile))
	assert.Equal(t, "user", profile.Username)

	// A learner still cannot reach the admin surface.
	w4 := httptest.NewRecorder()
	req4 := httptest.NewRequest(http.MethodPost, "/api/admin/tasks", strings.NewReader(`{}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-CSRF-Token", csrf.Token)
	for _, c := range sessionCookies {
		req4.AddCookie(c)
	}
	r.ServeHTTP(w4, req4)
	assert.Equal(t, http.StatusForbidden, w4.Code)
}

func TestWrongPasswordIsUnauthorized(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/csrf", nil))
	var csrf struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &csrf))

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"user","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", csrf.Token)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestUnauthorizedAccessToProtectedRoute(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
