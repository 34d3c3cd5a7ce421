package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateClientRequest struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	State        string
	IPAddress    string
	SMSOptIn     bool
	AgreeToTerms bool
}

type IssueSessionRequest struct {
	Client    *Client
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

type Service interface {
	// CreateClient creates the user and client records (plus an SMS consent
	// row when opted in) in a single transaction. The email starts
	// unconfirmed.
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)
	// DeleteClient removes the client and everything hanging off it. Used as
	// the compensation step when a later submission phase fails.
	DeleteClient(ctx context.Context, clientID snowflake.ID) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, clientID snowflake.ID) (*Client, error)
	IssueSession(ctx context.Context, req IssueSessionRequest) (*LoginResult, error)
	Authenticate(ctx context.Context, rawToken string) (*Client, error)
}

type Repository interface {
	CreateUser(ctx context.Context, db *gorm.DB, user *User) error
	CreateClient(ctx context.Context, db *gorm.DB, client *Client) error
	CreateSMSConsent(ctx context.Context, db *gorm.DB, consent *SMSConsent) error
	FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindClientByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	FindClientByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Client, error)
	FindSMSConsentByClientID(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (*SMSConsent, error)
	DeleteClientTree(ctx context.Context, db *gorm.DB, clientID snowflake.ID) error
	CreateSession(ctx context.Context, db *gorm.DB, session *Session) error
	GetSessionByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*Session, error)
	UpdateLastSeen(ctx context.Context, db *gorm.DB, sessionID snowflake.ID, lastSeen time.Time) error
}
