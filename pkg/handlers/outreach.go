package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/outreach"
	"github.com/pitchline-inc/pitchline-engine/pkg/services"
)

// SendRequest is the reviewed draft the operator submits for delivery.
type SendRequest struct {
	Stage   string `json:"stage"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// OutreachHandler handles the draft, send, and history endpoints.
type OutreachHandler struct {
	outreachService services.OutreachService
	logger          *zap.Logger
}

// NewOutreachHandler creates a new OutreachHandler.
func NewOutreachHandler(outreachService services.OutreachService, logger *zap.Logger) *OutreachHandler {
	return &OutreachHandler{
		outreachService: outreachService,
		logger:          logger,
	}
}

// RegisterRoutes registers the outreach handler's routes on the given mux.
func (h *OutreachHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/clients/{cid}/outreach", h.History)
	mux.HandleFunc("POST /api/clients/{cid}/outreach/draft", h.Draft)
	mux.HandleFunc("POST /api/clients/{cid}/outreach/send", h.Send)
}

// History handles GET /api/clients/{cid}/outreach
// Returns the client's sent messages and next eligible stage.
func (h *OutreachHandler) History(w http.ResponseWriter, r *http.Request) {
	clientID, ok := ParseClientID(w, r, h.logger)
	if !ok {
		return
	}

	history, err := h.outreachService.History(r.Context(), clientID)
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, history); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Draft handles POST /api/clients/{cid}/outreach/draft
// Generates a draft for the client's next stage. Nothing is persisted; the
// operator reviews the draft and submits it to the send endpoint.
func (h *OutreachHandler) Draft(w http.ResponseWriter, r *http.Request) {
	clientID, ok := ParseClientID(w, r, h.logger)
	if !ok {
		return
	}

	draft, err := h.outreachService.Draft(r.Context(), clientID)
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, draft); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Send handles POST /api/clients/{cid}/outreach/send
// Delivers the reviewed draft and records it in the stage's slot.
func (h *OutreachHandler) Send(w http.ResponseWriter, r *http.Request) {
	clientID, ok := ParseClientID(w, r, h.logger)
	if !ok {
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	stage, err := outreach.ParseStage(req.Stage)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_stage", "Unknown outreach stage"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "empty_message", "Subject and body are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	message, err := h.outreachService.Send(r.Context(), clientID, stage, req.Subject, req.Body)
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stage":   string(stage),
		"message": message,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
