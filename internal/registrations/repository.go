package registrations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2706msjk-ui/gilmo/internal/models"
)

const registrationColumns = `id, name, birth_date, gender, phone, instagram_id, height, weight,
	body_photo_url, face_photo_url, event_date, location, job, charm, preferred_style,
	participation_type, referral_source, sms_sent, sms_sent_at, created_at`

// Repository handles registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a registration and fills in the store-generated fields.
func (r *Repository) Create(ctx context.Context, reg *models.Registration) error {
	const q = `INSERT INTO registrations
		(id, name, birth_date, gender, phone, instagram_id, height, weight,
		 body_photo_url, face_photo_url, event_date, location, job, charm,
		 preferred_style, participation_type, referral_source)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, sms_sent, created_at`
	return r.pool.QueryRow(ctx, q,
		reg.Name, reg.BirthDate, reg.Gender, reg.Phone, reg.InstagramID, reg.Height, reg.Weight,
		reg.BodyPhotoURL, reg.FacePhotoURL, reg.EventDate, reg.Location, reg.Job, reg.Charm,
		reg.PreferredStyle, reg.ParticipationType, reg.ReferralSource,
	).Scan(&reg.ID, &reg.SMSSent, &reg.CreatedAt)
}

// GetByID returns a registration by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	var reg models.Registration
	if err := r.pool.QueryRow(ctx, q, id).Scan(scanTargets(&reg)...); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns all registrations, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Registration, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registration
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(scanTargets(&reg)...); err != nil {
			return nil, err
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// ClaimNotified atomically flips an unsent row to sent and reports whether
// this caller won the claim. A row already sent is left untouched, making a
// replayed trigger a no-op.
func (r *Repository) ClaimNotified(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE registrations SET sms_sent = TRUE, sms_sent_at = NOW()
		WHERE id = $1 AND sms_sent = FALSE`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseNotified reverts a claim after a failed dispatch so the row stays
// retriable by a manual trigger.
func (r *Repository) ReleaseNotified(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE registrations SET sms_sent = FALSE, sms_sent_at = NULL WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

func scanTargets(reg *models.Registration) []any {
	return []any{
		&reg.ID, &reg.Name, &reg.BirthDate, &reg.Gender, &reg.Phone, &reg.InstagramID,
		&reg.Height, &reg.Weight, &reg.BodyPhotoURL, &reg.FacePhotoURL, &reg.EventDate,
		&reg.Location, &reg.Job, &reg.Charm, &reg.PreferredStyle, &reg.ParticipationType,
		&reg.ReferralSource, &reg.SMSSent, &reg.SMSSentAt, &reg.CreatedAt,
	}
}
