package smslogs

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2706msjk-ui/gilmo/internal/models"
)

// Repository handles sms_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an SMS logs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Log inserts one dispatch attempt record.
func (r *Repository) Log(ctx context.Context, l *models.SMSLog) error {
	const q = `INSERT INTO sms_logs (id, registration_id, recipient, body, message_type, status, error_message)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q,
		l.RegistrationID, l.Recipient, l.Body, l.MessageType, l.Status, l.ErrorMessage,
	).Scan(&l.ID, &l.CreatedAt)
}

// ListByRegistration returns dispatch attempts for a registration, newest first.
func (r *Repository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]models.SMSLog, error) {
	const q = `SELECT id, registration_id, recipient, body, message_type, status, COALESCE(error_message, ''), created_at
		FROM sms_logs WHERE registration_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.SMSLog
	for rows.Next() {
		var l models.SMSLog
		if err := rows.Scan(&l.ID, &l.RegistrationID, &l.Recipient, &l.Body, &l.MessageType, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
