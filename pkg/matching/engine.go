// Package matching filters properties against a client's hard constraints.
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// ClientGetter loads one client by id.
type ClientGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Client, error)
}

// PropertyLister returns all properties in ingestion order.
type PropertyLister interface {
	ListAll(ctx context.Context) ([]models.Property, error)
}

// Engine matches clients to properties. All six predicates are conjunctive;
// there is no fuzzy matching and no relaxation when the result set is empty.
type Engine struct {
	clients    ClientGetter
	properties PropertyLister
	logger     *zap.Logger
}

// NewEngine creates a matching engine.
func NewEngine(clients ClientGetter, properties PropertyLister, logger *zap.Logger) *Engine {
	return &Engine{
		clients:    clients,
		properties: properties,
		logger:     logger.Named("matching"),
	}
}

// FindMatches returns every property satisfying the client's hard
// constraints, cheapest first, ingestion order breaking ties. An empty result
// is not an error; an unknown client id is.
func (e *Engine) FindMatches(ctx context.Context, clientID int64) ([]models.Property, error) {
	client, err := e.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load client %d: %w", clientID, err)
	}

	if err := ValidateConstraints(client); err != nil {
		return nil, err
	}

	properties, err := e.properties.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	var matches []models.Property
	for _, p := range properties {
		if Matches(client, p) {
			matches = append(matches, p)
		}
	}

	// Stable keeps ingestion order among equally priced properties, so
	// re-invocation with unchanged data returns the identical sequence.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Cost < matches[j].Cost
	})

	e.logger.Debug("Matched properties",
		zap.Int64("client_id", clientID),
		zap.Int("count", len(matches)))

	return matches, nil
}

// ValidateConstraints rejects clients whose constraint set cannot be matched
// safely. An empty preferred-city set would otherwise silently match nothing
// or, worse, be interpreted as "all cities".
func ValidateConstraints(client *models.Client) error {
	if len(trimmedCities(client.PreferredCities)) == 0 {
		return fmt.Errorf("client %d has no preferred cities: %w", client.ID, apperrors.ErrInvalidClient)
	}
	if client.MaxBudget < 0 {
		return fmt.Errorf("client %d has negative budget: %w", client.ID, apperrors.ErrInvalidClient)
	}
	return nil
}

// Matches reports whether a property satisfies all six of the client's hard
// constraints: preferred city, exact home type, budget ceiling, exact
// basement flag, minimum rooms, minimum garages.
func Matches(client *models.Client, p models.Property) bool {
	if !cityPreferred(client.PreferredCities, p.City) {
		return false
	}
	if p.HomeType != client.HomeType {
		return false
	}
	if p.Cost > client.MaxBudget {
		return false
	}
	if p.Basement != client.BasementNeeded {
		return false
	}
	if p.Rooms < client.MinRooms {
		return false
	}
	if p.Garages < client.MinGarages {
		return false
	}
	return true
}

func cityPreferred(preferred []string, city string) bool {
	for _, c := range preferred {
		if strings.TrimSpace(c) == city {
			return true
		}
	}
	return false
}

func trimmedCities(cities []string) []string {
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
