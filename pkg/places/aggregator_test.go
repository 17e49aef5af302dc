package places

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/maps"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

type mockSearcher struct {
	results map[string][]maps.PlaceResult
	errs    map[string]error
	calls   []models.PlaceQuery
	radius  int
}

func (m *mockSearcher) SearchNearby(ctx context.Context, location models.LatLng, radiusMeters int, query models.PlaceQuery) ([]maps.PlaceResult, error) {
	m.calls = append(m.calls, query)
	m.radius = radiusMeters
	if err := m.errs[query.Tag()]; err != nil {
		return nil, err
	}
	return m.results[query.Tag()], nil
}

func austin() *models.LatLng {
	return &models.LatLng{Lat: 30.2672, Lng: -97.7431}
}

func TestAggregate_NilLocation(t *testing.T) {
	searcher := &mockSearcher{}
	agg := NewAggregator(searcher, 8000, zap.NewNop())

	places := agg.Aggregate(context.Background(), nil, []models.PlaceQuery{{Category: "park"}})

	assert.Empty(t, places)
	assert.Empty(t, searcher.calls, "no search should run without coordinates")
}

func TestAggregate_CapsResultsPerQuery(t *testing.T) {
	var many []maps.PlaceResult
	for i := 0; i < 7; i++ {
		many = append(many, maps.PlaceResult{Name: fmt.Sprintf("School %d", i)})
	}
	searcher := &mockSearcher{results: map[string][]maps.PlaceResult{"school": many}}
	agg := NewAggregator(searcher, 8000, zap.NewNop())

	places := agg.Aggregate(context.Background(), austin(), []models.PlaceQuery{{Category: "school"}})

	require.Len(t, places, 3)
	// The first three results in the searcher's own order survive.
	assert.Equal(t, "School 0", places[0].Name)
	assert.Equal(t, "School 2", places[2].Name)
}

func TestAggregate_TagsAndOrderFollowQueries(t *testing.T) {
	searcher := &mockSearcher{results: map[string][]maps.PlaceResult{
		"park":              {{Name: "Zilker Park", Address: "2100 Barton Springs Rd", Rating: 4.8}},
		"restaurant:indian": {{Name: "Curry House"}},
	}}
	agg := NewAggregator(searcher, 8000, zap.NewNop())

	queries := []models.PlaceQuery{
		{Category: "park"},
		{Category: "restaurant", Keyword: "indian"},
	}
	places := agg.Aggregate(context.Background(), austin(), queries)

	require.Len(t, places, 2)
	assert.Equal(t, "park", places[0].Tag)
	assert.Equal(t, "Zilker Park", places[0].Name)
	assert.Equal(t, 4.8, places[0].Rating)
	assert.Equal(t, "restaurant:indian", places[1].Tag)
}

func TestAggregate_FailedPairIsSkipped(t *testing.T) {
	searcher := &mockSearcher{
		results: map[string][]maps.PlaceResult{"park": {{Name: "Zilker Park"}}},
		errs:    map[string]error{"school": errors.New("OVER_QUERY_LIMIT")},
	}
	agg := NewAggregator(searcher, 8000, zap.NewNop())

	queries := []models.PlaceQuery{{Category: "school"}, {Category: "park"}}
	places := agg.Aggregate(context.Background(), austin(), queries)

	require.Len(t, places, 1)
	assert.Equal(t, "Zilker Park", places[0].Name)
	assert.Len(t, searcher.calls, 2, "remaining pairs still run after a failure")
}

func TestAggregate_NoCrossPairDedup(t *testing.T) {
	// A venue matching two requested categories appears once under each tag.
	searcher := &mockSearcher{results: map[string][]maps.PlaceResult{
		"cafe":   {{Name: "Corner Cafe"}},
		"bakery": {{Name: "Corner Cafe"}},
	}}
	agg := NewAggregator(searcher, 8000, zap.NewNop())

	queries := []models.PlaceQuery{{Category: "cafe"}, {Category: "bakery"}}
	places := agg.Aggregate(context.Background(), austin(), queries)

	require.Len(t, places, 2)
	assert.Equal(t, "cafe", places[0].Tag)
	assert.Equal(t, "bakery", places[1].Tag)
}

func TestAggregate_PassesConfiguredRadius(t *testing.T) {
	searcher := &mockSearcher{}
	agg := NewAggregator(searcher, 8000, zap.NewNop())

	agg.Aggregate(context.Background(), austin(), []models.PlaceQuery{{Category: "park"}})

	assert.Equal(t, 8000, searcher.radius)
}
