package events

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2706msjk-ui/gilmo/internal/models"
)

// Repository reads event_settings. This system has no write path to the table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an event settings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListSettings returns capacity settings for every event date, soonest first.
func (r *Repository) ListSettings(ctx context.Context) ([]models.EventSetting, error) {
	const q = `SELECT id, event_date, male_current, male_max, female_current, female_max
		FROM event_settings ORDER BY event_date ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EventSetting
	for rows.Next() {
		var s models.EventSetting
		if err := rows.Scan(&s.ID, &s.EventDate, &s.MaleCurrent, &s.MaleMax, &s.FemaleCurrent, &s.FemaleMax); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
