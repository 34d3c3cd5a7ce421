package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hearthshare/inquiry/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateUser(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) CreateClient(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) CreateSMSConsent(ctx context.Context, db *gorm.DB, consent *domain.SMSConsent) error {
	return db.WithContext(ctx).Create(consent).Error
}

func (r *repo) FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindClientByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) FindClientByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) FindSMSConsentByClientID(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (*domain.SMSConsent, error) {
	var consent domain.SMSConsent
	err := db.WithContext(ctx).Where("client_id = ?", clientID).First(&consent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &consent, nil
}

// DeleteClientTree removes the client, its user, and every dependent row.
// Callers wrap it in a transaction when combining with other deletes.
func (r *repo) DeleteClientTree(ctx context.Context, db *gorm.DB, clientID snowflake.ID) error {
	client, err := r.FindClientByID(ctx, db, clientID)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&domain.SMSConsent{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("user_id = ?", client.UserID).Delete(&domain.Session{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("id = ?", clientID).Delete(&domain.Client{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("id = ?", client.UserID).Delete(&domain.User{}).Error
}

func (r *repo) CreateSession(ctx context.Context, db *gorm.DB, session *domain.Session) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *repo) GetSessionByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*domain.Session, error) {
	var session domain.Session
	err := db.WithContext(ctx).Where("session_token_hash = ?", tokenHash).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repo) UpdateLastSeen(ctx context.Context, db *gorm.DB, sessionID snowflake.ID, lastSeen time.Time) error {
	tx := db.WithContext(ctx).Model(&domain.Session{}).Where("id = ?", sessionID).Update("last_seen_at", lastSeen)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
