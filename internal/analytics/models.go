package analytics

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Event is the persisted copy of an emitted tracking event. The warehouse
// export reads this table in batches.
type Event struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	Identity   string            `gorm:"not null;default:''"`
	Event      string            `gorm:"type:text;not null"`
	Properties datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "analytics_events" }
