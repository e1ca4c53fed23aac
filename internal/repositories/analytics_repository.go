package repositories

import (
	"database/sql"

	"github.com/lib/pq"
)

// AnalyticsRepository - read-only агрегаты поверх хранилища жалоб.
// Все счетчики считаются только по представителям (representative_id IS NULL).
type AnalyticsRepository interface {
	CountRepresentatives() (int64, error)
	CountByStatus(statuses ...string) (int64, error)
	CountActiveWorkers() (int64, error)
	AvgResolutionHours() (float64, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountRepresentatives() (int64, error) {
	var count int64
	err := r.db.QueryRow(`
        SELECT COUNT(*) FROM complaints WHERE representative_id IS NULL
    `).Scan(&count)
	return count, err
}

func (r *analyticsRepository) CountByStatus(statuses ...string) (int64, error) {
	var count int64
	err := r.db.QueryRow(`
        SELECT COUNT(*) FROM complaints
        WHERE representative_id IS NULL AND status = ANY($1)
    `, pq.Array(statuses)).Scan(&count)
	return count, err
}

func (r *analyticsRepository) CountActiveWorkers() (int64, error) {
	var count int64
	err := r.db.QueryRow(`
        SELECT COUNT(*) FROM users WHERE role = 'worker' AND is_active = true
    `).Scan(&count)
	return count, err
}

// AvgResolutionHours - среднее время решения в часах по завершенным
// представителям. Записи без resolved_at пропускаются; 0 если завершенных нет.
func (r *analyticsRepository) AvgResolutionHours() (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRow(`
        SELECT AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600)
        FROM complaints
        WHERE status = 'Completed'
          AND representative_id IS NULL
          AND resolved_at IS NOT NULL
    `).Scan(&avg)
	if avg.Valid {
		return avg.Float64, err
	}
	return 0, err
}
