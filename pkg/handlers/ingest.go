package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/ingest"
	"github.com/pitchline-inc/pitchline-engine/pkg/services"
)

// maxWorkbookBytes caps the multipart memory buffer for workbook uploads.
const maxWorkbookBytes = 16 << 20

// IngestHandler handles workbook upload endpoints.
type IngestHandler struct {
	ingestionService services.IngestionService
	logger           *zap.Logger
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestionService services.IngestionService, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{
		ingestionService: ingestionService,
		logger:           logger,
	}
}

// RegisterRoutes registers the ingest handler's routes on the given mux.
func (h *IngestHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ingest/clients", h.IngestClients)
	mux.HandleFunc("POST /api/ingest/properties", h.IngestProperties)
}

// IngestClients handles POST /api/ingest/clients
// Accepts a multipart upload with a "file" part holding an xlsx workbook.
// Any invalid row rejects the entire file.
func (h *IngestHandler) IngestClients(w http.ResponseWriter, r *http.Request) {
	file, ok := h.workbookFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	count, err := h.ingestionService.IngestClients(r.Context(), file)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"ingested": count,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// IngestProperties handles POST /api/ingest/properties
// Accepts a multipart upload with a "file" part holding an xlsx workbook.
// Each property is geocoded during ingestion.
func (h *IngestHandler) IngestProperties(w http.ResponseWriter, r *http.Request) {
	file, ok := h.workbookFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	count, err := h.ingestionService.IngestProperties(r.Context(), file)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"ingested": count,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// workbookFile extracts the "file" multipart part, writing an error response
// on failure.
func (h *IngestHandler) workbookFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(maxWorkbookBytes); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_upload", "Expected multipart form upload"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_file", "Missing \"file\" form field"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	return file, true
}

// writeIngestError reports workbook content failures as 400 with the
// row-level detail. Everything else (geocoding, storage) goes through the
// shared taxonomy mapping and never echoes internals to the caller.
func (h *IngestHandler) writeIngestError(w http.ResponseWriter, err error) {
	if !errors.Is(err, ingest.ErrInvalidWorkbook) {
		ServiceError(w, err, h.logger)
		return
	}

	h.logger.Warn("Workbook rejected", zap.Error(err))
	if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_workbook", err.Error()); werr != nil {
		h.logger.Error("Failed to write error response", zap.Error(werr))
	}
}
