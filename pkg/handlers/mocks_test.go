package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/outreach"
	"github.com/pitchline-inc/pitchline-engine/pkg/services"
)

// ============================================================================
// Mock implementations shared by the handler tests
// ============================================================================

type mockClientRepo struct {
	clients []*models.Client
	err     error
}

func (m *mockClientRepo) Create(ctx context.Context, client *models.Client) error { return nil }

func (m *mockClientRepo) CreateBatch(ctx context.Context, clients []*models.Client) error {
	return nil
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("client %d: %w", id, apperrors.ErrNotFound)
}

func (m *mockClientRepo) List(ctx context.Context) ([]*models.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.clients, nil
}

func (m *mockClientRepo) RecordSend(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string, sentAt time.Time) error {
	return nil
}

type mockPropertyRepo struct {
	properties []models.Property
	err        error
}

func (m *mockPropertyRepo) CreateBatch(ctx context.Context, properties []*models.Property) error {
	return nil
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockPropertyRepo) ListAll(ctx context.Context) ([]models.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
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

type mockOutreachService struct {
	draftResult   *services.DraftResult
	draftErr      error
	sendResult    *models.OutreachMessage
	sendErr       error
	historyResult *services.HistoryResult
	historyErr    error

	sendCalls []sentStage
}

type sentStage struct {
	clientID int64
	stage    outreach.Stage
	subject  string
	body     string
}

func (m *mockOutreachService) Draft(ctx context.Context, clientID int64) (*services.DraftResult, error) {
	if m.draftErr != nil {
		return nil, m.draftErr
	}
	return m.draftResult, nil
}

func (m *mockOutreachService) Send(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string) (*models.OutreachMessage, error) {
	m.sendCalls = append(m.sendCalls, sentStage{clientID, stage, subject, body})
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return m.sendResult, nil
}

func (m *mockOutreachService) History(ctx context.Context, clientID int64) (*services.HistoryResult, error) {
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.historyResult, nil
}

type mockIngestionService struct {
	count int
	err   error
}

func (m *mockIngestionService) IngestClients(ctx context.Context, r io.Reader) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockIngestionService) IngestProperties(ctx context.Context, r io.Reader) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

type mockAdminService struct {
	err   error
	calls int
}

func (m *mockAdminService) ClearAll(ctx context.Context) error {
	m.calls++
	return m.err
}
