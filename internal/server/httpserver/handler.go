package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
)

const (
	msgHealthy         = "User Auth service is healthy"
	msgFieldsRequired  = "Username and password required"
	msgUsernameTaken   = "Username already exists"
	msgUnauthorized    = "Unauthorized"
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token"
	msgInternalFailure = "Internal server error"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid   bool         `json:"valid"`
	Decoded *auth.Claims `json:"decoded"`
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, msgHealthy)
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			respondMessage(w, http.StatusBadRequest, msgFieldsRequired)
		case errors.Is(err, common.ErrConflict):
			respondMessage(w, http.StatusBadRequest, msgUsernameTaken)
		default:
			s.internalError(w, r, "register failed", err)
		}
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID, "username", user.UserName)
	respondJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Username: user.UserName})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			respondMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		s.internalError(w, r, "login failed", err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *HTTPServer) verify(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		respondMessage(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	claims, err := s.users.Verify(r.Context(), bearerToken(header))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.logger.Debug(r.Context(), "token rejected", "reason", err.Error())
			respondMessage(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		s.internalError(w, r, "verify failed", err)
		return
	}

	respondJSON(w, http.StatusOK, verifyResponse{Valid: true, Decoded: claims})
}

func (s *HTTPServer) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(r.Context(), msg, "error", err.Error())
	respondMessage(w, http.StatusInternalServerError, msgInternalFailure)
}

// bearerToken returns the second whitespace-delimited segment of the
// Authorization header, or "" if there is none.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
