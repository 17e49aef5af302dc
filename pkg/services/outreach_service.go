package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/mail"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/outreach"
	"github.com/pitchline-inc/pitchline-engine/pkg/places"
	"github.com/pitchline-inc/pitchline-engine/pkg/repositories"
)

// MatchFinder is the matching engine's contract as the outreach flow sees it.
type MatchFinder interface {
	FindMatches(ctx context.Context, clientID int64) ([]models.Property, error)
}

// DraftResult is a generated draft awaiting operator review.
type DraftResult struct {
	Stage        outreach.Stage       `json:"stage"`
	Draft        models.EmailDraft    `json:"draft"`
	BestMatch    models.Property      `json:"best_match"`
	NearbyPlaces []models.NearbyPlace `json:"nearby_places"`
}

// HistoryResult is a client's outreach history plus the next eligible stage.
type HistoryResult struct {
	NextStage             outreach.Stage          `json:"next_stage"`
	FirstMessage          *models.OutreachMessage `json:"first_message,omitempty"`
	FollowUpMessage       *models.OutreachMessage `json:"follow_up_message,omitempty"`
	SecondFollowUpMessage *models.OutreachMessage `json:"second_follow_up_message,omitempty"`
}

// OutreachService drives the operator flow: draft, review/send, history.
type OutreachService interface {
	// Draft runs match -> suggest -> aggregate -> compose -> generate and
	// returns the draft for operator review. Nothing is persisted.
	Draft(ctx context.Context, clientID int64) (*DraftResult, error)

	// Send transports the reviewed draft and records the send. The slot is
	// only written after the transport confirms delivery.
	Send(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string) (*models.OutreachMessage, error)

	// History returns the client's sent messages and next eligible stage.
	History(ctx context.Context, clientID int64) (*HistoryResult, error)
}

type outreachService struct {
	clients     repositories.ClientRepository
	matcher     MatchFinder
	suggestions SuggestionService
	aggregator  *places.Aggregator
	pitches     PitchService
	mailer      mail.Mailer
	senderName  string
	now         func() time.Time
	logger      *zap.Logger
}

// NewOutreachService creates a new OutreachService.
func NewOutreachService(
	clients repositories.ClientRepository,
	matcher MatchFinder,
	suggestions SuggestionService,
	aggregator *places.Aggregator,
	pitches PitchService,
	mailer mail.Mailer,
	senderName string,
	logger *zap.Logger,
) OutreachService {
	return &outreachService{
		clients:     clients,
		matcher:     matcher,
		suggestions: suggestions,
		aggregator:  aggregator,
		pitches:     pitches,
		mailer:      mailer,
		senderName:  senderName,
		now:         time.Now,
		logger:      logger.Named("outreach"),
	}
}

var _ OutreachService = (*outreachService)(nil)

func (s *outreachService) Draft(ctx context.Context, clientID int64) (*DraftResult, error) {
	requestID := uuid.New().String()
	logger := s.logger.With(zap.String("request_id", requestID), zap.Int64("client_id", clientID))

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	stage := outreach.NextStage(client)
	if stage == outreach.StageExhausted {
		return nil, fmt.Errorf("client %d has received all three messages: %w", clientID, apperrors.ErrIllegalTransition)
	}

	matches, err := s.matcher.FindMatches(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("client %d: %w", clientID, apperrors.ErrNoMatches)
	}
	best := matches[0]

	// Suggestion or search failures degrade to a thinner pitch rather than
	// aborting the draft; the property itself is still worth pitching.
	var nearby []models.NearbyPlace
	queries, err := s.suggestions.SuggestPlaces(ctx, client, best.City)
	if err != nil {
		logger.Warn("Place suggestions unavailable, drafting without enrichment", zap.Error(err))
		nearby = []models.NearbyPlace{}
	} else {
		nearby = s.aggregator.Aggregate(ctx, best.Location, queries)
	}

	pc := outreach.BuildContext(client, best, nearby, s.senderName, stage)

	var draft *models.EmailDraft
	if stage == outreach.StageFirst {
		draft, err = s.pitches.GenerateInitial(ctx, pc)
	} else {
		draft, err = s.pitches.GenerateFollowUp(ctx, pc)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Draft generated",
		zap.String("stage", string(stage)),
		zap.Int64("property_id", best.ID),
		zap.Int("nearby_places", len(nearby)))

	return &DraftResult{
		Stage:        stage,
		Draft:        *draft,
		BestMatch:    best,
		NearbyPlaces: nearby,
	}, nil
}

func (s *outreachService) Send(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string) (*models.OutreachMessage, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// Reject out-of-order sends before touching the transport. The
	// repository guard repeats this check atomically at commit time.
	if err := outreach.CheckTransition(client, stage); err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, client.Email, subject, body); err != nil {
		// Transport failed: the slot stays empty and the operator retries.
		return nil, err
	}

	// Timestamp is captured at send time, not compose time; review can sit
	// between the two for a while.
	sentAt := s.now()

	if err := s.clients.RecordSend(ctx, clientID, stage, subject, body, sentAt); err != nil {
		s.logger.Error("Send delivered but not recorded",
			zap.Int64("client_id", clientID),
			zap.String("stage", string(stage)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Outreach sent",
		zap.Int64("client_id", clientID),
		zap.String("stage", string(stage)))

	return &models.OutreachMessage{Subject: subject, Body: body, SentAt: sentAt}, nil
}

func (s *outreachService) History(ctx context.Context, clientID int64) (*HistoryResult, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &HistoryResult{
		NextStage:             outreach.NextStage(client),
		FirstMessage:          client.FirstMessage,
		FollowUpMessage:       client.FollowUpMessage,
		SecondFollowUpMessage: client.SecondFollowUpMessage,
	}, nil
}
