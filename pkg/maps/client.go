// Package maps wraps the Google Maps Platform: geocoding at ingestion time
// and nearby search for outreach enrichment.
package maps

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// Geocoder resolves a postal address to coordinates.
// A nil result with nil error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.LatLng, error)
}

// PlaceResult is one raw result from the nearby-search capability, in the
// capability's own relevance order.
type PlaceResult struct {
	Name    string
	Address string
	Rating  float64
}

// PlacesSearcher finds places of one category near a coordinate.
type PlacesSearcher interface {
	SearchNearby(ctx context.Context, location models.LatLng, radiusMeters int, query models.PlaceQuery) ([]PlaceResult, error)
}

// Client implements Geocoder and PlacesSearcher against the Google Maps API.
type Client struct {
	client *gmaps.Client
	logger *zap.Logger
}

var (
	_ Geocoder       = (*Client)(nil)
	_ PlacesSearcher = (*Client)(nil)
)

// NewClient creates a Google Maps client.
func NewClient(apiKey string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps api key is required")
	}

	c, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &Client{
		client: c,
		logger: logger.Named("maps"),
	}, nil
}
