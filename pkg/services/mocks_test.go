package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/outreach"
)

// ============================================================================
// Mock implementations shared by the service tests
// ============================================================================

type mockClientRepo struct {
	clients map[int64]*models.Client

	createBatchErr error
	recordSendErr  error

	batches     [][]*models.Client
	recordCalls []recordSendCall
}

type recordSendCall struct {
	clientID int64
	stage    outreach.Stage
	subject  string
	body     string
	sentAt   time.Time
}

func newMockClientRepo(clients ...*models.Client) *mockClientRepo {
	m := &mockClientRepo{clients: make(map[int64]*models.Client)}
	for _, c := range clients {
		m.clients[c.ID] = c
	}
	return m
}

func (m *mockClientRepo) Create(ctx context.Context, client *models.Client) error {
	client.ID = int64(len(m.clients) + 1)
	m.clients[client.ID] = client
	return nil
}

func (m *mockClientRepo) CreateBatch(ctx context.Context, clients []*models.Client) error {
	if m.createBatchErr != nil {
		return m.createBatchErr
	}
	m.batches = append(m.batches, clients)
	for _, c := range clients {
		c.ID = int64(len(m.clients) + 1)
		m.clients[c.ID] = c
	}
	return nil
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	client, ok := m.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %d: %w", id, apperrors.ErrNotFound)
	}
	return client, nil
}

func (m *mockClientRepo) List(ctx context.Context) ([]*models.Client, error) {
	var out []*models.Client
	for _, c := range m.clients {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockClientRepo) RecordSend(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string, sentAt time.Time) error {
	if m.recordSendErr != nil {
		return m.recordSendErr
	}
	m.recordCalls = append(m.recordCalls, recordSendCall{clientID, stage, subject, body, sentAt})
	return nil
}

type mockPropertyRepo struct {
	properties []models.Property

	createBatchErr error
	batches        [][]*models.Property
}

func (m *mockPropertyRepo) CreateBatch(ctx context.Context, properties []*models.Property) error {
	if m.createBatchErr != nil {
		return m.createBatchErr
	}
	m.batches = append(m.batches, properties)
	for _, p := range properties {
		p.ID = int64(len(m.properties) + 1)
		m.properties = append(m.properties, *p)
	}
	return nil
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	for _, p := range m.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("property %d: %w", id, apperrors.ErrNotFound)
}

func (m *mockPropertyRepo) ListAll(ctx context.Context) ([]models.Property, error) {
	return m.properties, nil
}

type mockMatcher struct {
	matches []models.Property
	err     error
}

func (m *mockMatcher) FindMatches(ctx context.Context, clientID int64) ([]models.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

type mockSuggestionService struct {
	queries []models.PlaceQuery
	err     error
	calls   int
}

func (m *mockSuggestionService) SuggestPlaces(ctx context.Context, client *models.Client, city string) ([]models.PlaceQuery, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.queries, nil
}

type mockPitchService struct {
	draft *models.EmailDraft
	err   error

	initialCalls  int
	followUpCalls int
	lastContext   models.PitchContext
}

func (m *mockPitchService) GenerateInitial(ctx context.Context, pc models.PitchContext) (*models.EmailDraft, error) {
	m.initialCalls++
	m.lastContext = pc
	if m.err != nil {
		return nil, m.err
	}
	return m.draft, nil
}

func (m *mockPitchService) GenerateFollowUp(ctx context.Context, pc models.PitchContext) (*models.EmailDraft, error) {
	m.followUpCalls++
	m.lastContext = pc
	if m.err != nil {
		return nil, m.err
	}
	return m.draft, nil
}

type mockGeocoder struct {
	locations map[string]*models.LatLng
	err       error
	calls     []string
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*models.LatLng, error) {
	m.calls = append(m.calls, address)
	if m.err != nil {
		return nil, m.err
	}
	return m.locations[address], nil
}

type mockAdminRepo struct {
	cleared int
	err     error
}

func (m *mockAdminRepo) ClearAll(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.cleared++
	return nil
}
