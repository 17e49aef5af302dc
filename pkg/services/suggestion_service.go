package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/llm"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/prompts"
	"github.com/pitchline-inc/pitchline-engine/pkg/retry"
)

// Suggestion list bounds enforced at the generation boundary. The generator
// contract promises 3-5 category/keyword pairs.
const (
	minSuggestions = 3
	maxSuggestions = 5
)

// SuggestionService produces point-of-interest queries relevant to a client.
type SuggestionService interface {
	// SuggestPlaces returns 3-5 parsed "category[:keyword]" queries for the
	// given city, tailored to the client profile.
	SuggestPlaces(ctx context.Context, client *models.Client, city string) ([]models.PlaceQuery, error)
}

type suggestionService struct {
	llmClient   llm.Client
	temperature float64
	logger      *zap.Logger
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(llmClient llm.Client, temperature float64, logger *zap.Logger) SuggestionService {
	return &suggestionService{
		llmClient:   llmClient,
		temperature: temperature,
		logger:      logger.Named("suggestions"),
	}
}

var _ SuggestionService = (*suggestionService)(nil)

func (s *suggestionService) SuggestPlaces(ctx context.Context, client *models.Client, city string) ([]models.PlaceQuery, error) {
	prompt := prompts.BuildPlaceSuggestionPrompt(client, city)

	var raw string
	err := retry.DoIfRetryable(ctx, nil, func() error {
		var genErr error
		raw, genErr = s.llmClient.GenerateResponse(ctx, prompt, prompts.PlaceSuggestionSystemPrompt, s.temperature)
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("place suggestion generation: %w", err)
	}

	queries, err := ParsePlaceQueries(raw)
	if err != nil {
		s.logger.Warn("Malformed place suggestions",
			zap.Int64("client_id", client.ID),
			zap.String("raw", raw))
		return nil, err
	}

	s.logger.Debug("Place suggestions",
		zap.Int64("client_id", client.ID),
		zap.String("city", city),
		zap.Int("count", len(queries)))

	return queries, nil
}

// ParsePlaceQueries parses the generator's comma-separated
// "category[:keyword]" list and validates the 3-5 bound. Anything outside
// that contract is ErrMalformedGeneration: free prose must not travel deeper
// into the pipeline as a place category.
func ParsePlaceQueries(raw string) ([]models.PlaceQuery, error) {
	parts := strings.Split(raw, ",")
	queries := make([]models.PlaceQuery, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		category, keyword, _ := strings.Cut(part, ":")
		category = strings.TrimSpace(category)
		keyword = strings.TrimSpace(keyword)

		if category == "" || strings.ContainsAny(category, " .\n") {
			return nil, fmt.Errorf("invalid place category %q: %w", part, apperrors.ErrMalformedGeneration)
		}

		queries = append(queries, models.PlaceQuery{Category: category, Keyword: keyword})
	}

	if len(queries) < minSuggestions || len(queries) > maxSuggestions {
		return nil, fmt.Errorf("expected %d-%d place suggestions, got %d: %w",
			minSuggestions, maxSuggestions, len(queries), apperrors.ErrMalformedGeneration)
	}

	return queries, nil
}
