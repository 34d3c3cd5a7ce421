package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ZipForecast is one row of the data-science zip code forecast. The table is
// loaded by an out-of-band pipeline; this service only reads it.
type ZipForecast struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ZipCode       string       `gorm:"not null;uniqueIndex" json:"zip_code"`
	ForecastScore *float64     `gorm:"column:forecast_score" json:"forecast_score,omitempty"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ZipForecast) TableName() string { return "zip_forecasts" }

type Repository interface {
	ListAll(ctx context.Context, db *gorm.DB) ([]ZipForecast, error)
}

// Provider hands out the current forecast snapshot. A snapshot is immutable,
// so classification within one request never sees a half-refreshed table.
type Provider interface {
	Snapshot() *Snapshot
	Refresh(ctx context.Context) error
}
