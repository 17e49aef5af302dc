package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/ingest"
	"github.com/pitchline-inc/pitchline-engine/pkg/logging"
	"github.com/pitchline-inc/pitchline-engine/pkg/maps"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/repositories"
	"github.com/pitchline-inc/pitchline-engine/pkg/retry"
)

// IngestionService loads client and property workbooks into the store.
type IngestionService interface {
	// IngestClients parses and stores a client workbook. Returns the number
	// of rows stored. Any invalid row rejects the whole file.
	IngestClients(ctx context.Context, r io.Reader) (int, error)

	// IngestProperties parses a property workbook, geocodes each address
	// once, and stores the batch. A geocoding failure stores the property
	// without coordinates rather than dropping the row.
	IngestProperties(ctx context.Context, r io.Reader) (int, error)
}

type ingestionService struct {
	clients    repositories.ClientRepository
	properties repositories.PropertyRepository
	geocoder   maps.Geocoder
	logger     *zap.Logger
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	clients repositories.ClientRepository,
	properties repositories.PropertyRepository,
	geocoder maps.Geocoder,
	logger *zap.Logger,
) IngestionService {
	return &ingestionService{
		clients:    clients,
		properties: properties,
		geocoder:   geocoder,
		logger:     logger.Named("ingest"),
	}
}

var _ IngestionService = (*ingestionService)(nil)

func (s *ingestionService) IngestClients(ctx context.Context, r io.Reader) (int, error) {
	clients, err := ingest.ParseClients(r)
	if err != nil {
		return 0, fmt.Errorf("parse client workbook: %w", err)
	}

	if err := s.clients.CreateBatch(ctx, clients); err != nil {
		return 0, err
	}

	s.logger.Info("Clients ingested", zap.Int("count", len(clients)))
	return len(clients), nil
}

func (s *ingestionService) IngestProperties(ctx context.Context, r io.Reader) (int, error) {
	properties, err := ingest.ParseProperties(r)
	if err != nil {
		return 0, fmt.Errorf("parse property workbook: %w", err)
	}

	for _, p := range properties {
		p.Location = s.geocode(ctx, p.Address)
	}

	if err := s.properties.CreateBatch(ctx, properties); err != nil {
		return 0, err
	}

	s.logger.Info("Properties ingested", zap.Int("count", len(properties)))
	return len(properties), nil
}

// geocode resolves one address, retrying transient failures. A property whose
// address cannot be resolved is stored without coordinates; enrichment for it
// later degrades to an empty place list.
func (s *ingestionService) geocode(ctx context.Context, address string) *models.LatLng {
	location, err := retry.DoWithResult(ctx, nil, func() (*models.LatLng, error) {
		return s.geocoder.Geocode(ctx, address)
	})
	if err != nil {
		s.logger.Warn("Geocoding failed, storing property without coordinates",
			zap.String("address", address),
			zap.String("error", logging.SanitizeError(err)))
		return nil
	}
	return location
}
