// Package places reduces raw nearby-search results into the bounded,
// per-property enrichment list consumed by message generation.
package places

import (
	"context"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/logging"
	"github.com/pitchline-inc/pitchline-engine/pkg/maps"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// maxResultsPerQuery caps how many search results one category/keyword pair
// may contribute.
const maxResultsPerQuery = 3

// Aggregator turns per-pair nearby searches into one enrichment sequence.
type Aggregator struct {
	searcher     maps.PlacesSearcher
	radiusMeters int
	logger       *zap.Logger
}

// NewAggregator creates an aggregator with the fixed search radius.
func NewAggregator(searcher maps.PlacesSearcher, radiusMeters int, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		searcher:     searcher,
		radiusMeters: radiusMeters,
		logger:       logger.Named("places"),
	}
}

// Aggregate issues one search per query in the supplied order and keeps at
// most the first three results each, preserving the search capability's own
// relevance ordering. A nil location yields an empty sequence. A failed
// search for one pair contributes nothing; remaining pairs still run.
//
// No cross-pair deduplication happens: a venue matching two requested
// categories appears once under each tag. That duplication is accepted
// behavior, pending product-owner review.
func (a *Aggregator) Aggregate(ctx context.Context, location *models.LatLng, queries []models.PlaceQuery) []models.NearbyPlace {
	if location == nil {
		return []models.NearbyPlace{}
	}

	places := make([]models.NearbyPlace, 0, len(queries)*maxResultsPerQuery)
	for _, query := range queries {
		results, err := a.searcher.SearchNearby(ctx, *location, a.radiusMeters, query)
		if err != nil {
			a.logger.Warn("Nearby search failed, skipping pair",
				zap.String("tag", query.Tag()),
				zap.String("error", logging.SanitizeError(err)))
			continue
		}

		if len(results) > maxResultsPerQuery {
			results = results[:maxResultsPerQuery]
		}
		for _, r := range results {
			places = append(places, models.NearbyPlace{
				Name:    r.Name,
				Tag:     query.Tag(),
				Address: r.Address,
				Rating:  r.Rating,
			})
		}
	}

	return places
}
