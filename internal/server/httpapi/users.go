package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleSignup creates an account and immediately opens a session for it.
func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorEmailTaken):
			s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			s.logger.Error(r.Context(), "signup error", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	token, err := s.accounts.IssueSession(r.Context(), user)
	if err != nil {
		s.logger.Error(r.Context(), "session issue error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID)

	w.Header().Set(common.SessionTokenHeaderName, token)
	s.writeJSON(w, r, http.StatusOK, user.Public())
}

// handleLogin verifies credentials and opens a new session. Bad credentials
// answer 400 with no token header and no body detail: wrong password and
// unknown email are indistinguishable here.
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	user, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.logger.Error(r.Context(), "login error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	token, err := s.accounts.IssueSession(r.Context(), user)
	if err != nil {
		s.logger.Error(r.Context(), "session issue error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set(common.SessionTokenHeaderName, token)
	s.writeJSON(w, r, http.StatusOK, user.Public())
}

// handleMe returns the caller's identity.
func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {

	user, _, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s.writeJSON(w, r, http.StatusOK, user.Public())
}

// handleLogout revokes the session token the request was authenticated with.
func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {

	user, token, ok := identityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := s.accounts.RevokeSession(r.Context(), user, token); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
}
