package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/sunshade_report_system/internal/models"
)

// PostgresSource читает тот же справочник из таблицы assets.
// Таблица только читается, сервис в нее не пишет.
type PostgresSource struct {
	db *pgxpool.Pool
}

func NewPostgresSource(db *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: db}
}

// Load возвращает все записи с заданной широтой в порядке загрузки
func (s *PostgresSource) Load(ctx context.Context) ([]models.Asset, error) {
	query := `
		SELECT
			manage_number,
			latitude,
			longitude,
			site_name,
			address
		FROM assets
		WHERE latitude IS NOT NULL
		ORDER BY id;
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query assets: %w", models.ErrDataUnavailable, err)
	}
	defer rows.Close()

	assets := make([]models.Asset, 0)
	for rows.Next() {
		var (
			asset     models.Asset
			longitude *float64
		)
		if err := rows.Scan(
			&asset.ManageNumber,
			&asset.Latitude,
			&longitude,
			&asset.SiteName,
			&asset.Address,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan asset row: %w", models.ErrDataUnavailable, err)
		}
		if longitude == nil {
			return nil, fmt.Errorf("%w: asset %d has no longitude", models.ErrDataUnavailable, asset.ManageNumber)
		}
		asset.Longitude = *longitude
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error assets iteration: %w", models.ErrDataUnavailable, err)
	}
	return assets, nil
}
