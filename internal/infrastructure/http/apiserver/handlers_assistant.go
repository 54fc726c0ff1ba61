package apiserver

import (
	"net/http"
)

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// handleAssistantChat answers a cooking question. The assistant port cannot
// fail, so neither can this handler once the body validates.
func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}

	reply := s.assistant.Respond(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
