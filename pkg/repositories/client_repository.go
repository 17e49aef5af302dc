package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/database"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
	"github.com/pitchline-inc/pitchline-engine/pkg/outreach"
)

// ClientRepository provides data access for clients and their outreach slots.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	// CreateBatch inserts all clients in one transaction; a failed ingestion
	// never leaves a partial batch visible.
	CreateBatch(ctx context.Context, clients []*models.Client) error
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	// RecordSend commits a sent message into the slot for stage. The UPDATE
	// carries a slot-emptiness guard so a concurrent duplicate send is
	// detected as ErrIllegalTransition instead of overwriting state.
	RecordSend(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string, sentAt time.Time) error
}

type clientRepository struct {
	db *database.DB
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *database.DB) ClientRepository {
	return &clientRepository{db: db}
}

var _ ClientRepository = (*clientRepository)(nil)

const clientColumns = `
	id, name, email, preferred_cities, min_rooms, min_garages, basement_needed,
	kids_under_10, kids_under_18, home_type, ethnicity, max_budget,
	first_subject, first_body, first_sent_at,
	followup_subject, followup_body, followup_sent_at,
	second_followup_subject, second_followup_body, second_followup_sent_at,
	created_at`

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (
			name, email, preferred_cities, min_rooms, min_garages, basement_needed,
			kids_under_10, kids_under_18, home_type, ethnicity, max_budget
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.PreferredCities,
		client.MinRooms,
		client.MinGarages,
		client.BasementNeeded,
		client.KidsUnder10,
		client.KidsUnder18,
		client.HomeType,
		client.Ethnicity,
		client.MaxBudget,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *clientRepository) CreateBatch(ctx context.Context, clients []*models.Client) error {
	if len(clients) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO clients (
			name, email, preferred_cities, min_rooms, min_garages, basement_needed,
			kids_under_10, kids_under_18, home_type, ethnicity, max_budget
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	for _, client := range clients {
		err := tx.QueryRow(ctx, query,
			client.Name,
			client.Email,
			client.PreferredCities,
			client.MinRooms,
			client.MinGarages,
			client.BasementNeeded,
			client.KidsUnder10,
			client.KidsUnder18,
			client.HomeType,
			client.Ethnicity,
			client.MaxBudget,
		).Scan(&client.ID, &client.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert client %q: %w", client.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit client batch: %w", err)
	}

	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}

	return client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

// slotGuards maps each stage to its UPDATE clause. The WHERE guard demands
// the target slot empty and every earlier slot filled, which makes the
// monotonic-progression invariant hold even under racing requests.
var slotGuards = map[outreach.Stage]struct {
	set   string
	guard string
}{
	outreach.StageFirst: {
		set:   `first_subject = $2, first_body = $3, first_sent_at = $4`,
		guard: `first_subject IS NULL`,
	},
	outreach.StageFollowUp: {
		set:   `followup_subject = $2, followup_body = $3, followup_sent_at = $4`,
		guard: `first_subject IS NOT NULL AND followup_subject IS NULL`,
	},
	outreach.StageSecondFollowUp: {
		set:   `second_followup_subject = $2, second_followup_body = $3, second_followup_sent_at = $4`,
		guard: `followup_subject IS NOT NULL AND second_followup_subject IS NULL`,
	},
}

func (r *clientRepository) RecordSend(ctx context.Context, clientID int64, stage outreach.Stage, subject, body string, sentAt time.Time) error {
	slot, ok := slotGuards[stage]
	if !ok {
		return fmt.Errorf("stage %s cannot be recorded: %w", stage, apperrors.ErrIllegalTransition)
	}

	query := `UPDATE clients SET ` + slot.set + ` WHERE id = $1 AND ` + slot.guard

	result, err := r.db.Exec(ctx, query, clientID, subject, body, sentAt)
	if err != nil {
		return fmt.Errorf("failed to record %s send for client %d: %w", stage, clientID, err)
	}

	if result.RowsAffected() == 0 {
		// Either the client is gone or the slot guard failed.
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check client %d: %w", clientID, err)
		}
		if !exists {
			return fmt.Errorf("client %d: %w", clientID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("stage %s already sent or out of order for client %d: %w", stage, clientID, apperrors.ErrIllegalTransition)
	}

	return nil
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	var firstSubject, firstBody *string
	var firstSentAt *time.Time
	var followUpSubject, followUpBody *string
	var followUpSentAt *time.Time
	var secondSubject, secondBody *string
	var secondSentAt *time.Time

	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PreferredCities, &c.MinRooms, &c.MinGarages, &c.BasementNeeded,
		&c.KidsUnder10, &c.KidsUnder18, &c.HomeType, &c.Ethnicity, &c.MaxBudget,
		&firstSubject, &firstBody, &firstSentAt,
		&followUpSubject, &followUpBody, &followUpSentAt,
		&secondSubject, &secondBody, &secondSentAt,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.FirstMessage = buildMessage(firstSubject, firstBody, firstSentAt)
	c.FollowUpMessage = buildMessage(followUpSubject, followUpBody, followUpSentAt)
	c.SecondFollowUpMessage = buildMessage(secondSubject, secondBody, secondSentAt)

	return &c, nil
}

func buildMessage(subject, body *string, sentAt *time.Time) *models.OutreachMessage {
	if subject == nil {
		return nil
	}
	msg := &models.OutreachMessage{Subject: *subject}
	if body != nil {
		msg.Body = *body
	}
	if sentAt != nil {
		msg.SentAt = *sentAt
	}
	return msg
}
