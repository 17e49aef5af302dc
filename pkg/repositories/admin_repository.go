package repositories

import (
	"context"
	"fmt"

	"github.com/pitchline-inc/pitchline-engine/pkg/database"
)

// AdminRepository holds maintenance operations spanning multiple tables.
type AdminRepository interface {
	// ClearAll deletes every client and property. Both deletes run in one
	// transaction: observers never see one table cleared and the other not.
	ClearAll(ctx context.Context) error
}

type adminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db *database.DB) AdminRepository {
	return &adminRepository{db: db}
}

var _ AdminRepository = (*adminRepository)(nil)

func (r *adminRepository) ClearAll(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("failed to clear clients: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM properties`); err != nil {
		return fmt.Errorf("failed to clear properties: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	return nil
}
