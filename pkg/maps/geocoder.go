package maps

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// Geocode resolves an address to coordinates. Returns (nil, nil) when the
// API answers with zero results; the property is then stored without
// coordinates and enrichment degrades to an empty place list.
func (c *Client) Geocode(ctx context.Context, address string) (*models.LatLng, error) {
	results, err := c.client.Geocode(ctx, &gmaps.GeocodingRequest{
		Address: address,
	})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}

	if len(results) == 0 {
		c.logger.Warn("No geocoding result", zap.String("address", address))
		return nil, nil
	}

	loc := results[0].Geometry.Location
	return &models.LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}
