// Package domain contains core types for the client identity service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User holds login credentials and identity for a person.
type User struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	Email          string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash   *string      `gorm:"type:text"`
	FirstName      string       `gorm:"type:text;not null;default:''"`
	LastName       string       `gorm:"type:text;not null;default:''"`
	EmailConfirmed bool         `gorm:"column:email_confirmed;not null;default:false"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Client is the prospective-homeowner account created by the inquiry wizard.
type Client struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	UserID       snowflake.ID `gorm:"column:user_id;not null;uniqueIndex"`
	FriendlyID   string       `gorm:"column:friendly_id;type:text;not null;uniqueIndex"`
	PhoneNumber  string       `gorm:"column:phone_number;type:text;not null;default:''"`
	State        string       `gorm:"type:text;not null;default:''"`
	IPAddress    string       `gorm:"column:ip_address;type:text"`
	AgreeToTerms bool         `gorm:"column:agree_to_terms;not null;default:false"`
	Stage        string       `gorm:"type:text;not null;default:'lead'"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`

	User *User `gorm:"-" json:"-"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

// Lifecycle stages a client moves through. Transitions are owned by the
// lifecycle service.
const (
	StageLead            = "lead"
	StageInquiryInReview = "inquiry_in_review"
	StageInquiryApproved = "inquiry_approved"
	StageInquiryRejected = "inquiry_rejected"
)

// SMSConsent records that a client opted in to SMS contact during signup.
type SMSConsent struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	ClientID    snowflake.ID `gorm:"column:client_id;not null;uniqueIndex"`
	PhoneNumber string       `gorm:"column:phone_number;type:text;not null;default:''"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SMSConsent) TableName() string { return "sms_consents" }

// Session represents a persisted login session.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
