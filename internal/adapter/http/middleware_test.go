package adapthttp_test

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/app"

	"github.com/steinfletcher/apitest"
)

func basicHeader(credentials string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

func TestBasicAuthOverHTTP(t *testing.T) {
	h := newHandler(t, app.StrategyBasic, 0)
	register(t, h, "a@x.com", "pw1")

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Header("Authorization", basicHeader("a@x.com:pw1")).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"email": "a@x.com"}`).
		End()

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Header("Authorization", basicHeader("a@x.com:wrong")).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	// Malformed header: present, so past the 401 check, but unresolvable.
	apitest.Handler(h).
		Get("/api/v1/users/me").
		Header("Authorization", base64.StdEncoding.EncodeToString([]byte("a@x.com:pw1"))).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestNoneStrategyRejectsEverythingGuarded(t *testing.T) {
	h := newHandler(t, app.StrategyNone, 0)

	apitest.Handler(h).
		Get("/api/v1/status").
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(h).
		Get("/api/v1/users/me").
		Header("Authorization", basicHeader("a@x.com:pw1")).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestSessionLoginUnsupportedForBasicStrategy(t *testing.T) {
	h := newHandler(t, app.StrategyBasic, time.Minute)
	register(t, h, "a@x.com", "pw1")

	apitest.Handler(h).
		Post("/api/v1/auth_session/login").
		JSON(`{"email": "a@x.com", "password": "pw1"}`).
		Expect(t).
		Status(http.StatusNotImplemented).
		End()
}
