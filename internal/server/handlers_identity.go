package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"printerstore/internal/app"
	"printerstore/pkg/auth"
	"printerstore/pkg/domain"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userView is the wire shape of an account. The canonical role enum is
// exposed as userType for API compatibility.
type userView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func viewOf(user domain.User) userView {
	view := userView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		UserType: string(user.Role),
	}
	if !user.CreatedAt.IsZero() {
		view.CreatedAt = user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return view
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.registerLimiter, "too many registration attempts") {
		s.audit(r, "register", "rate_limited")
		return
	}
	var req registerRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.Register(req.Username, req.Email, req.Password, req.UserType)
	if err != nil {
		s.audit(r, "register", "fail", "reason", err.Error())
		writeRegisterError(w, err)
		return
	}
	s.audit(r, "register", "success", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: viewOf(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.loginLimiter, "too many login attempts") {
		s.audit(r, "login", "rate_limited")
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.Login(req.Username, req.Password)
	if err != nil {
		s.audit(r, "login", "fail", "reason", err.Error())
		writeLoginError(w, err)
		return
	}
	s.audit(r, "login", "success", "user_id", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: viewOf(user)})
}

func writeRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrFieldsRequired),
		errors.Is(err, app.ErrInvalidRole),
		errors.Is(err, app.ErrAccountExists),
		errors.Is(err, auth.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Registration failed")
	}
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUsernamePasswordRequired),
		errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Login failed")
	}
}
