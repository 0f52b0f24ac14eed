package adapthttp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapthttp "github.com/Krieglerlawoko/alx-backend-user-data/internal/adapter/http"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/adapter/memory"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/app"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

const cookieName = "_my_session_id"

func newHandler(t *testing.T, strategyType string, duration time.Duration) http.Handler {
	t.Helper()
	users := memory.New()
	sessions := memory.NewSessionRepo()
	strategy, err := app.NewAuthenticator(app.StrategyConfig{
		Type:            strategyType,
		CookieName:      cookieName,
		SessionDuration: duration,
	}, users, sessions)
	require.NoError(t, err)
	return adapthttp.New(app.NewAuthService(users), strategy, cookieName, nil).Handler()
}

func register(t *testing.T, h http.Handler, email, password string) {
	t.Helper()
	apitest.Handler(h).
		Post("/api/v1/users").
		JSON(`{"email": "` + email + `", "password": "` + password + `"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/v1/auth_session/login",
		strings.NewReader(`{"email": "`+email+`", "password": "`+password+`"}`))
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			require.NotEmpty(t, c.Value)
			return c.Value
		}
	}
	t.Fatal("login response carries no session cookie")
	return ""
}

func TestStatusIsExcludedFromGate(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)
	apitest.Handler(h).
		Get("/api/v1/status").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"status": "OK"}`).
		End()
}

func TestTrailingSlashRouting(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)

	apitest.Handler(h).
		Get("/api/v1/status/").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"status": "OK"}`).
		End()

	apitest.Handler(h).
		Post("/api/v1/users/").
		JSON(`{"email": "a@x.com", "password": "pw1"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.Handler(h).
		Get("/api/v1/users/me/").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestGuardedRouteWithoutCredentials(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)
	apitest.Handler(h).
		Get("/api/v1/users/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestGuardedRouteWithBogusCookie(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)
	apitest.Handler(h).
		Get("/api/v1/users/me").
		Cookies(apitest.NewCookie(cookieName).Value("not-a-session")).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestSessionLifecycle(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)

	register(t, h, "a@x.com", "pw1")

	// Wrong password and unknown email are rendered distinctly.
	apitest.Handler(h).
		Post("/api/v1/auth_session/login").
		JSON(`{"email": "a@x.com", "password": "nope"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
	apitest.Handler(h).
		Post("/api/v1/auth_session/login").
		JSON(`{"email": "ghost@x.com", "password": "pw1"}`).
		Expect(t).
		Status(http.StatusNotFound).
		End()
	apitest.Handler(h).
		Post("/api/v1/auth_session/login").
		JSON(`{"email": "", "password": "pw1"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	sessionID := login(t, h, "a@x.com", "pw1")

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"email": "a@x.com"}`).
		End()

	apitest.Handler(h).
		Delete("/api/v1/auth_session/logout").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusOK).
		End()

	// The destroyed session no longer resolves; a second logout finds nothing.
	apitest.Handler(h).
		Get("/api/v1/users/me").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusForbidden).
		End()
	apitest.Handler(h).
		Delete("/api/v1/auth_session/logout").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestExpiredSessionIsRejected(t *testing.T) {
	h := newHandler(t, app.StrategySessionExp, time.Millisecond)

	register(t, h, "a@x.com", "pw1")
	sessionID := login(t, h, "a@x.com", "pw1")

	time.Sleep(10 * time.Millisecond)

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestDBBackedSessionLifecycle(t *testing.T) {
	h := newHandler(t, app.StrategySessionDB, 0)

	register(t, h, "a@x.com", "pw1")
	sessionID := login(t, h, "a@x.com", "pw1")

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"email": "a@x.com"}`).
		End()

	apitest.Handler(h).
		Delete("/api/v1/auth_session/logout").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusOK).
		End()
	apitest.Handler(h).
		Delete("/api/v1/auth_session/logout").
		Cookies(apitest.NewCookie(cookieName).Value(sessionID)).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestDuplicateRegistration(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)

	register(t, h, "a@x.com", "pw1")
	apitest.Handler(h).
		Post("/api/v1/users").
		JSON(`{"email": "a@x.com", "password": "pw2"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"message": "Email already registered"}`).
		End()
}

func TestPasswordResetFlow(t *testing.T) {
	h := newHandler(t, app.StrategySession, 0)

	register(t, h, "a@x.com", "pw1")

	apitest.Handler(h).
		Post("/api/v1/reset_password").
		JSON(`{"email": "ghost@x.com"}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/v1/reset_password",
		strings.NewReader(`{"email": "a@x.com"}`))
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Email      string `json:"email"`
		ResetToken string `json:"reset_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ResetToken)

	apitest.Handler(h).
		Put("/api/v1/reset_password").
		JSON(`{"email": "a@x.com", "reset_token": "` + resp.ResetToken + `", "new_password": "pw2"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	// The token is gone; the new password works, the old one does not.
	apitest.Handler(h).
		Put("/api/v1/reset_password").
		JSON(`{"email": "a@x.com", "reset_token": "` + resp.ResetToken + `", "new_password": "pw3"}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()
	apitest.Handler(h).
		Post("/api/v1/auth_session/login").
		JSON(`{"email": "a@x.com", "password": "pw1"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
	login(t, h, "a@x.com", "pw2")
}
