package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceError maps a service-layer error onto the HTTP taxonomy and writes
// the response. Unknown errors are logged and reported as internal_error.
func ServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var statusCode int
	var errorCode string

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode, errorCode = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrNoMatches):
		statusCode, errorCode = http.StatusNotFound, "no_matches"
	case errors.Is(err, apperrors.ErrInvalidClient):
		statusCode, errorCode = http.StatusUnprocessableEntity, "invalid_client"
	case errors.Is(err, apperrors.ErrIllegalTransition):
		statusCode, errorCode = http.StatusConflict, "illegal_transition"
	case errors.Is(err, apperrors.ErrMalformedGeneration):
		statusCode, errorCode = http.StatusBadGateway, "malformed_generation"
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		if werr := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	if werr := ErrorResponse(w, statusCode, errorCode, err.Error()); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}
