package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	resty "github.com/restyhq/resty"
	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/logging"
	"github.com/restyhq/resty/session"
	"github.com/restyhq/resty/sheet"
)

type handler struct {
	concierge Concierge
	logger    logging.Logger
}

func (h *handler) registerRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/v1/sessions", h.createSession).Methods(http.MethodPost)
	r.HandleFunc("/v1/sessions/{id}/messages", h.postMessage).Methods(http.MethodPost)
	r.HandleFunc("/v1/sessions/{id}/criteria", h.getCriteria).Methods(http.MethodGet)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting,omitempty"`
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.concierge.StartSession()
	if err != nil {
		h.logger.Error("start session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	resp := sessionResponse{SessionID: sess.ID}
	if msgs := sess.Messages(); len(msgs) > 0 && msgs[0].Role == core.RoleAssistant {
		resp.Greeting = msgs[0].Content
	}
	writeJSON(w, http.StatusCreated, resp)
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

func (h *handler) postMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.concierge.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		h.writeChatError(w, sessionID, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Reply: reply})
}

// writeChatError maps pipeline errors onto HTTP statuses. The concierge
// itself never produces user-facing text; the apology wording lives here at
// the edge.
func (h *handler) writeChatError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, resty.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message must not be empty")
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown session")
	case errors.Is(err, resty.ErrTurnInProgress):
		writeError(w, http.StatusConflict, "previous message still processing, please wait")
	case errors.Is(err, sheet.ErrUnavailable):
		h.logger.Error("restaurant data unavailable", "session_id", sessionID, "error", err)
		writeError(w, http.StatusBadGateway, "restaurant data is temporarily unavailable, please try again")
	default:
		h.logger.Error("chat turn failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

func (h *handler) getCriteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.concierge.Criteria(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown session")
			return
		}
		h.logger.Error("criteria lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load criteria")
		return
	}
	writeJSON(w, http.StatusOK, criteria)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
