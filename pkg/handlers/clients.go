package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/repositories"
)

// PropertyMatcher finds properties satisfying a client's constraints.
type PropertyMatcher interface {
	FindMatches(ctx context.Context, clientID int64) ([]models.Property, error)
}

// ClientsHandler handles client listing, lookup, and matching endpoints.
type ClientsHandler struct {
	clients repositories.ClientRepository
	matcher PropertyMatcher
	logger  *zap.Logger
}

// NewClientsHandler creates a new ClientsHandler.
func NewClientsHandler(clients repositories.ClientRepository, matcher PropertyMatcher, logger *zap.Logger) *ClientsHandler {
	return &ClientsHandler{
		clients: clients,
		matcher: matcher,
		logger:  logger,
	}
}

// RegisterRoutes registers the clients handler's routes on the given mux.
func (h *ClientsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/clients", h.List)
	mux.HandleFunc("GET /api/clients/{cid}", h.Get)
	mux.HandleFunc("GET /api/clients/{cid}/matches", h.Matches)
}

// List handles GET /api/clients
// Returns all clients in ingestion order.
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"clients": clients,
		"count":   len(clients),
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/clients/{cid}
func (h *ClientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, ok := ParseClientID(w, r, h.logger)
	if !ok {
		return
	}

	client, err := h.clients.GetByID(r.Context(), clientID)
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, client); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Matches handles GET /api/clients/{cid}/matches
// Returns every property satisfying the client's constraints, cheapest first.
func (h *ClientsHandler) Matches(w http.ResponseWriter, r *http.Request) {
	clientID, ok := ParseClientID(w, r, h.logger)
	if !ok {
		return
	}

	matches, err := h.matcher.FindMatches(r.Context(), clientID)
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
