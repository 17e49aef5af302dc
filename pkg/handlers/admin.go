package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/services"
)

// AdminHandler handles operator maintenance endpoints.
type AdminHandler struct {
	adminService services.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin handler's routes on the given mux.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("DELETE /api/admin/data", h.ClearData)
}

// ClearData handles DELETE /api/admin/data
// Removes every client and property in one transaction.
func (h *AdminHandler) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.ClearAll(r.Context()); err != nil {
		ServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
