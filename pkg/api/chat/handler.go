package chat

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	corechat "finanalyst/pkg/core/chat"
	"finanalyst/pkg/core/responder"
	"finanalyst/pkg/core/session"
)

// Handler exposes the conversational interface over a session.
type Handler struct {
	sessions  *session.Manager
	responder *responder.Responder
	logger    zerolog.Logger
}

func NewHandler(sessions *session.Manager, r *responder.Responder, logger zerolog.Logger) *Handler {
	return &Handler{sessions: sessions, responder: r, logger: logger}
}

// AskRequest carries one user question.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse returns the assistant's answer plus the full refreshed
// conversation, so the caller can redraw after the mutation.
type AskResponse struct {
	Answer   string          `json:"answer"`
	Messages []corechat.Turn `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleAsk appends a question and its grounded answer to the log.
// POST /api/v1/sessions/{sessionID}/chat
//
// Responder failures (missing credential, provider error, anything
// else) come back as assistant text and are appended like any other
// answer; this endpoint never surfaces them as HTTP errors.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is empty"})
		return
	}

	s.Append(corechat.Turn{Role: corechat.RoleUser, Text: question})

	apiKey := os.Getenv(responder.CredentialKey)
	answer := h.responder.Respond(r.Context(), s.Context(), question, apiKey)
	s.Append(corechat.Turn{Role: corechat.RoleAssistant, Text: answer})

	writeJSON(w, http.StatusOK, AskResponse{Answer: answer, Messages: s.Messages()})
}

// HandleHistory returns the conversation in order.
// GET /api/v1/sessions/{sessionID}/messages
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Messages: s.Messages()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
