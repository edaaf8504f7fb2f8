package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/auth"
	"github.com/sysdash/sysdash/internal/telemetry"
)

// SessionCookie is the name of the login session cookie.
const SessionCookie = "sysdash_session"

type sessionKey struct{}

// sessionFrom returns the session attached to the request context by
// requireSession.
func sessionFrom(req *http.Request) *auth.Session {
	s, _ := req.Context().Value(sessionKey{}).(*auth.Session)
	return s
}

// requireSession gates a handler behind a valid session cookie.
func (r *Router) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		cookie, err := req.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		session, ok := r.sessions.Validate(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "session expired")
			return
		}
		next(w, req.WithContext(context.WithValue(req.Context(), sessionKey{}, session)))
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body loginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !r.credentials.Verify(body.Username, body.Password) {
		telemetry.LoginFailures.Inc()
		log.Warn().Str("user", body.Username).Msg("Login rejected")
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session := r.sessions.Create(body.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"user":      session.User,
		"expiresAt": session.ExpiresAt,
	})
}

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := sessionFrom(req)
	r.sessions.Delete(session.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
