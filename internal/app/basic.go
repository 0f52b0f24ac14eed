package app

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/logutil"
)

const basicPrefix = "Basic "

// BasicAuth resolves identities from HTTP Basic Authorization headers.
type BasicAuth struct {
	baseAuth
	users domain.UserRepository
}

// CurrentUser chains the extraction stages, short-circuiting on the first
// failure. Malformed headers and failed lookups are indistinguishable: both
// yield nil.
func (a *BasicAuth) CurrentUser(ctx context.Context, r *http.Request) *domain.User {
	payload := extractBase64(a.AuthorizationHeader(r))
	if payload == "" {
		return nil
	}
	decoded := decodeBase64(payload)
	if decoded == "" {
		return nil
	}
	email, password, ok := splitCredentials(decoded)
	if !ok {
		return nil
	}
	return a.userFromCredentials(ctx, email, password)
}

// extractBase64 returns the credential blob of a Basic Authorization header,
// or "" when the header is absent or lacks the literal "Basic " prefix.
func extractBase64(header string) string {
	rest, ok := strings.CutPrefix(header, basicPrefix)
	if !ok {
		return ""
	}
	return rest
}

// decodeBase64 decodes the blob to UTF-8 text, "" on any decode error.
func decodeBase64(payload string) string {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}

// splitCredentials splits decoded credentials on the first colon.
func splitCredentials(decoded string) (email, password string, ok bool) {
	email, password, ok = strings.Cut(decoded, ":")
	if !ok || email == "" {
		return "", "", false
	}
	return email, password, true
}

func (a *BasicAuth) userFromCredentials(ctx context.Context, email, password string) *domain.User {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		l := logutil.GetOrDefault(ctx)
		l.Debug().Err(err).Msg("basic auth user lookup failed")
		return nil
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil
	}
	return user
}
