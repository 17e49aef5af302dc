package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/repositories"
)

// PropertiesHandler handles property listing endpoints.
type PropertiesHandler struct {
	properties repositories.PropertyRepository
	logger     *zap.Logger
}

// NewPropertiesHandler creates a new PropertiesHandler.
func NewPropertiesHandler(properties repositories.PropertyRepository, logger *zap.Logger) *PropertiesHandler {
	return &PropertiesHandler{
		properties: properties,
		logger:     logger,
	}
}

// RegisterRoutes registers the properties handler's routes on the given mux.
func (h *PropertiesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/properties", h.List)
}

// List handles GET /api/properties
// Returns all properties in ingestion order.
func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.properties.ListAll(r.Context())
	if err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
