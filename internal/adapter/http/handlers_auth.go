package adapthttp

import (
	"errors"
	"net/http"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/app"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password missing")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, app.ErrEmailTaken) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email already registered"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"email": user.Email, "message": "User created"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password missing")
		return
	}

	if _, err := s.auth.UserByEmail(r.Context(), req.Email); errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "no user found for this email")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, ok := s.auth.VerifyCredentials(r.Context(), req.Email, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}

	creator, ok := s.strategy.(app.SessionCreator)
	if !ok {
		writeError(w, http.StatusNotImplemented, "session login unsupported")
		return
	}
	sessionID, err := creator.CreateSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.setSessionCookie(w, sessionID)
	writeJSON(w, http.StatusOK, map[string]string{"email": user.Email, "message": "Logged in"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	destroyer, ok := s.strategy.(app.SessionDestroyer)
	if !ok || !destroyer.DestroySession(r.Context(), r) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": user.Email})
}

// handleResetPassword serves both halves of the reset flow: POST issues a
// token, PUT consumes it. Unknown emails and invalid tokens both map to 403.
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Email string `json:"email"`
		}
		if err := parseJSON(r, &req); err != nil || req.Email == "" {
			writeError(w, http.StatusBadRequest, "email missing")
			return
		}
		token, err := s.auth.RequestPasswordReset(r.Context(), req.Email)
		if errors.Is(err, app.ErrUserNotFound) {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": req.Email, "reset_token": token})

	case http.MethodPut:
		var req struct {
			Email       string `json:"email"`
			ResetToken  string `json:"reset_token"`
			NewPassword string `json:"new_password"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		err := s.auth.ResetPassword(r.Context(), req.ResetToken, req.NewPassword)
		if errors.Is(err, app.ErrInvalidResetToken) {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": req.Email, "message": "Password updated"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string) {
	if s.cookieName == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	if s.cookieName == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
