package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/database"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// PropertyRepository provides data access for property listings. Rows are
// append-only: nothing updates a property after ingestion.
type PropertyRepository interface {
	CreateBatch(ctx context.Context, properties []*models.Property) error
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	// ListAll returns every property in ingestion (id) order. The matching
	// engine depends on that order for stable cost ties.
	ListAll(ctx context.Context) ([]models.Property, error)
}

type propertyRepository struct {
	db *database.DB
}

// NewPropertyRepository creates a new PropertyRepository.
func NewPropertyRepository(db *database.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

var _ PropertyRepository = (*propertyRepository)(nil)

const propertyColumns = `
	id, city, rooms, garages, basement, home_type, address, cost,
	latitude, longitude, created_at`

// CreateBatch inserts all properties in one transaction so a failed ingestion
// never leaves a partial batch visible.
func (r *propertyRepository) CreateBatch(ctx context.Context, properties []*models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO properties (
			city, rooms, garages, basement, home_type, address, cost, latitude, longitude
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	for _, p := range properties {
		var lat, lng *float64
		if p.Location != nil {
			lat, lng = &p.Location.Lat, &p.Location.Lng
		}

		err := tx.QueryRow(ctx, query,
			p.City, p.Rooms, p.Garages, p.Basement, p.HomeType, p.Address, p.Cost, lat, lng,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert property %q: %w", p.Address, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit property batch: %w", err)
	}

	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("property %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property %d: %w", id, err)
	}

	return property, nil
}

func (r *propertyRepository) ListAll(ctx context.Context) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return properties, nil
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	var lat, lng *float64

	err := row.Scan(
		&p.ID, &p.City, &p.Rooms, &p.Garages, &p.Basement, &p.HomeType,
		&p.Address, &p.Cost, &lat, &lng, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lng != nil {
		p.Location = &models.LatLng{Lat: *lat, Lng: *lng}
	}

	return &p, nil
}
