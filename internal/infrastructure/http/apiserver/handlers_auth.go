package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/pkg/errors"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, token, err := s.accounts.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAuthResponse(sess, token))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAuthResponse(sess, token))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.dropSubmitter(sess.UserID)
	s.accounts.Logout(sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}

type updateProfileRequest struct {
	Name      string `json:"name" validate:"omitempty,max=255"`
	Bio       string `json:"bio" validate:"max=2000"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess := sessionFrom(r)
	user, err := s.accounts.UpdateProfile(r.Context(), sess.UserID, req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"bio":        user.Bio,
		"avatar_url": user.AvatarURL,
	})
}

func newAuthResponse(sess *session.Session, token string) authResponse {
	return authResponse{
		Token: token,
		User: userPayload{
			ID:    sess.UserID.String(),
			Email: sess.Email,
			Name:  sess.Name,
		},
	}
}

// decode unmarshals and validates a JSON request body, writing the error
// response itself when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, errors.NewValidationError("invalid JSON body"))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, errors.NewValidationError(err.Error()))
		return false
	}
	return true
}
