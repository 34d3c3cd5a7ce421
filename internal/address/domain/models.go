package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Address is the property address captured on the first wizard step.
// Immutable once created; inquiries reference it with SET NULL on delete.
type Address struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Street    string       `gorm:"not null" json:"street"`
	Unit      string       `gorm:"not null;default:''" json:"unit"`
	City      string       `gorm:"not null" json:"city"`
	State     string       `gorm:"not null" json:"state"`
	ZipCode   string       `gorm:"not null" json:"zip_code"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Address) TableName() string { return "addresses" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, address *Address) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Address, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
