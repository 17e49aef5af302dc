package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/mail"
	"github.com/pitchline-inc/pitchline-engine/pkg/maps"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/outreach"
	"github.com/pitchline-inc/pitchline-engine/pkg/places"
)

type stubSearcher struct {
	results []maps.PlaceResult
}

func (s *stubSearcher) SearchNearby(ctx context.Context, location models.LatLng, radiusMeters int, query models.PlaceQuery) ([]maps.PlaceResult, error) {
	return s.results, nil
}

type outreachFixture struct {
	clients     *mockClientRepo
	matcher     *mockMatcher
	suggestions *mockSuggestionService
	pitches     *mockPitchService
	mailer      *mail.MockMailer
	service     OutreachService
	now         time.Time
}

func newOutreachFixture(t *testing.T, client *models.Client) *outreachFixture {
	t.Helper()

	f := &outreachFixture{
		clients: newMockClientRepo(client),
		matcher: &mockMatcher{matches: []models.Property{
			{ID: 7, City: "Austin", Cost: 450000, Location: &models.LatLng{Lat: 30.2672, Lng: -97.7431}},
			{ID: 8, City: "Austin", Cost: 480000},
		}},
		suggestions: &mockSuggestionService{queries: []models.PlaceQuery{
			{Category: "school"}, {Category: "park"}, {Category: "cafe"},
		}},
		pitches: &mockPitchService{draft: &models.EmailDraft{Subject: "s", Body: "b"}},
		mailer:  &mail.MockMailer{},
		now:     time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}

	aggregator := places.NewAggregator(&stubSearcher{results: []maps.PlaceResult{{Name: "Zilker Park"}}}, 8000, zap.NewNop())

	svc := NewOutreachService(f.clients, f.matcher, f.suggestions, aggregator, f.pitches, f.mailer, "Pitchline", zap.NewNop())
	svc.(*outreachService).now = func() time.Time { return f.now }
	f.service = svc
	return f
}

func TestDraft_FirstStage(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1, Email: "dana@example.com"})

	result, err := f.service.Draft(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, outreach.StageFirst, result.Stage)
	assert.Equal(t, int64(7), result.BestMatch.ID, "best match is the cheapest")
	assert.Equal(t, "s", result.Draft.Subject)
	assert.Equal(t, 1, f.pitches.initialCalls)
	assert.Zero(t, f.pitches.followUpCalls)
	assert.NotEmpty(t, result.NearbyPlaces)

	// Drafting never touches persistent state or the transport.
	assert.Empty(t, f.clients.recordCalls)
	assert.Empty(t, f.mailer.Sent)
}

func TestDraft_FollowUpUsesFollowUpGenerator(t *testing.T) {
	client := &models.Client{
		ID:           1,
		FirstMessage: &models.OutreachMessage{Subject: "s", Body: "first body", SentAt: time.Now()},
	}
	f := newOutreachFixture(t, client)

	result, err := f.service.Draft(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, outreach.StageFollowUp, result.Stage)
	assert.Equal(t, 1, f.pitches.followUpCalls)
	assert.Equal(t, "first body", f.pitches.lastContext.FirstEmail)
}

func TestDraft_ExhaustedClient(t *testing.T) {
	msg := &models.OutreachMessage{Subject: "s", Body: "b", SentAt: time.Now()}
	client := &models.Client{ID: 1, FirstMessage: msg, FollowUpMessage: msg, SecondFollowUpMessage: msg}
	f := newOutreachFixture(t, client)

	_, err := f.service.Draft(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func TestDraft_NoMatches(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1})
	f.matcher.matches = nil

	_, err := f.service.Draft(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrNoMatches)
}

func TestDraft_UnknownClient(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1})

	_, err := f.service.Draft(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDraft_SuggestionFailureDegradesToEmptyEnrichment(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1})
	f.suggestions.err = errors.New("generation backend unreachable")

	result, err := f.service.Draft(context.Background(), 1)
	require.NoError(t, err, "a draft without enrichment beats no draft")
	assert.Empty(t, result.NearbyPlaces)
	assert.Equal(t, 1, f.pitches.initialCalls)
}

func TestDraft_NoCoordinatesMeansNoEnrichment(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1})
	f.matcher.matches = []models.Property{{ID: 7, City: "Austin", Cost: 450000, Location: nil}}

	result, err := f.service.Draft(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, result.NearbyPlaces)
}

func TestDraft_PitchFailureSurfaces(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1})
	f.pitches.err = errors.New("generation backend unreachable")

	_, err := f.service.Draft(context.Background(), 1)
	assert.Error(t, err)
}

func TestSend_RecordsAfterDelivery(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1, Email: "dana@example.com"})

	msg, err := f.service.Send(context.Background(), 1, outreach.StageFirst, "Subject", "Body")
	require.NoError(t, err)

	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "dana@example.com", f.mailer.Sent[0].To)

	require.Len(t, f.clients.recordCalls, 1)
	call := f.clients.recordCalls[0]
	assert.Equal(t, outreach.StageFirst, call.stage)
	assert.Equal(t, "Subject", call.subject)
	assert.Equal(t, f.now, call.sentAt, "timestamp is captured at send time")
	assert.Equal(t, f.now, msg.SentAt)
}

func TestSend_TransportFailureRecordsNothing(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1, Email: "dana@example.com"})
	f.mailer.SendFunc = func(ctx context.Context, to, subject, body string) error {
		return errors.New("smtp connection refused by server")
	}

	_, err := f.service.Send(context.Background(), 1, outreach.StageFirst, "Subject", "Body")
	require.Error(t, err)
	assert.Empty(t, f.clients.recordCalls, "slot must stay empty after a failed delivery")
}

func TestSend_RejectsWrongStage(t *testing.T) {
	f := newOutreachFixture(t, &models.Client{ID: 1, Email: "dana@example.com"})

	_, err := f.service.Send(context.Background(), 1, outreach.StageFollowUp, "Subject", "Body")
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	assert.Empty(t, f.mailer.Sent, "transport must not run for an illegal transition")
}

func TestHistory(t *testing.T) {
	first := &models.OutreachMessage{Subject: "s1", Body: "b1", SentAt: time.Now()}
	f := newOutreachFixture(t, &models.Client{ID: 1, FirstMessage: first})

	history, err := f.service.History(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, outreach.StageFollowUp, history.NextStage)
	assert.Equal(t, first, history.FirstMessage)
	assert.Nil(t, history.FollowUpMessage)
	assert.Nil(t, history.SecondFollowUpMessage)
}
