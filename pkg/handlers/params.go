package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ParseClientID extracts and validates the client ID from the request path.
// Returns the parsed ID and true on success, or 0 and false on error (after
// writing an error response).
// Expects path parameter: cid
func ParseClientID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int64, bool) {
	idStr := r.PathValue("cid")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_client_id", "Invalid client ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}
	return id, true
}
