package repository

import (
	"context"

	"github.com/hearthshare/inquiry/internal/forecast/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.ZipForecast, error) {
	var rows []domain.ZipForecast
	err := db.WithContext(ctx).Raw(
		`SELECT id, zip_code, forecast_score, updated_at FROM zip_forecasts`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
