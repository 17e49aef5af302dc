package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/jsonutil"
	"github.com/pitchline-inc/pitchline-engine/pkg/llm"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/prompts"
	"github.com/pitchline-inc/pitchline-engine/pkg/retry"
)

// PitchService generates pitch emails from a composed context.
type PitchService interface {
	// GenerateInitial produces the first-contact email draft.
	GenerateInitial(ctx context.Context, pc models.PitchContext) (*models.EmailDraft, error)

	// GenerateFollowUp produces a follow-up draft referencing prior messages.
	GenerateFollowUp(ctx context.Context, pc models.PitchContext) (*models.EmailDraft, error)
}

type pitchService struct {
	llmClient   llm.Client
	temperature float64
	logger      *zap.Logger
}

// NewPitchService creates a new PitchService.
func NewPitchService(llmClient llm.Client, temperature float64, logger *zap.Logger) PitchService {
	return &pitchService{
		llmClient:   llmClient,
		temperature: temperature,
		logger:      logger.Named("pitch"),
	}
}

var _ PitchService = (*pitchService)(nil)

func (s *pitchService) GenerateInitial(ctx context.Context, pc models.PitchContext) (*models.EmailDraft, error) {
	return s.generate(ctx, prompts.InitialPitchSystemPrompt, prompts.BuildInitialPitchPrompt(pc))
}

func (s *pitchService) GenerateFollowUp(ctx context.Context, pc models.PitchContext) (*models.EmailDraft, error) {
	return s.generate(ctx, prompts.FollowUpPitchSystemPrompt, prompts.BuildFollowUpPitchPrompt(pc))
}

func (s *pitchService) generate(ctx context.Context, systemPrompt, prompt string) (*models.EmailDraft, error) {
	var raw string
	err := retry.DoIfRetryable(ctx, nil, func() error {
		var genErr error
		raw, genErr = s.llmClient.GenerateResponse(ctx, prompt, systemPrompt, s.temperature)
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("pitch generation: %w", err)
	}

	draft, err := ParseEmailDraft(raw)
	if err != nil {
		s.logger.Warn("Malformed pitch generation", zap.String("raw", raw))
		return nil, err
	}

	return draft, nil
}

// rawDraft tolerates models emitting non-string scalars for either key.
type rawDraft struct {
	Subject json.RawMessage `json:"subject"`
	Body    json.RawMessage `json:"body"`
}

// ParseEmailDraft extracts and validates the generated email JSON. Missing or
// empty subject/body keys are ErrMalformedGeneration; the caller must not
// send or persist such a draft.
func ParseEmailDraft(raw string) (*models.EmailDraft, error) {
	parsed, err := llm.ParseJSONResponse[rawDraft](raw)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrMalformedGeneration)
	}

	draft := &models.EmailDraft{
		Subject: jsonutil.FlexibleStringValue(parsed.Subject),
		Body:    jsonutil.FlexibleStringValue(parsed.Body),
	}

	if draft.Subject == "" || draft.Body == "" {
		return nil, fmt.Errorf("draft missing subject or body: %w", apperrors.ErrMalformedGeneration)
	}

	return draft, nil
}
