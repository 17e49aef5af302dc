package maps

import (
	"context"
	"fmt"

	gmaps "googlemaps.github.io/maps"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// noAddress is reported when the API returns a place without a vicinity.
const noAddress = "No address available"

// SearchNearby finds places of the query's category within radiusMeters of
// location. Results stay in the API's own relevance order; the caller decides
// how many to keep.
func (c *Client) SearchNearby(ctx context.Context, location models.LatLng, radiusMeters int, query models.PlaceQuery) ([]PlaceResult, error) {
	req := &gmaps.NearbySearchRequest{
		Location: &gmaps.LatLng{Lat: location.Lat, Lng: location.Lng},
		Radius:   uint(radiusMeters),
		Keyword:  query.Keyword,
	}
	if query.Category != "" {
		req.Type = gmaps.PlaceType(query.Category)
	}

	resp, err := c.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("nearby search %q: %w", query.Tag(), err)
	}

	results := make([]PlaceResult, 0, len(resp.Results))
	for _, place := range resp.Results {
		address := place.Vicinity
		if address == "" {
			address = noAddress
		}
		results = append(results, PlaceResult{
			Name:    place.Name,
			Address: address,
			Rating:  float64(place.Rating),
		})
	}

	return results, nil
}
