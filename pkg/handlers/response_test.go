package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteJSON(rec, http.StatusCreated, map[string]string{"k": "v"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"k": "v"}`, rec.Body.String())
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	err := ErrorResponse(rec, http.StatusNotFound, "not_found", "Client not found")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "not_found", "message": "Client not found"}`, rec.Body.String())
}

func TestServiceError_Taxonomy(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{apperrors.ErrNoMatches, http.StatusNotFound, "no_matches"},
		{apperrors.ErrInvalidClient, http.StatusUnprocessableEntity, "invalid_client"},
		{apperrors.ErrIllegalTransition, http.StatusConflict, "illegal_transition"},
		{apperrors.ErrMalformedGeneration, http.StatusBadGateway, "malformed_generation"},
		{errors.New("anything else"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ServiceError(rec, fmt.Errorf("context: %w", tt.err), zap.NewNop())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}
