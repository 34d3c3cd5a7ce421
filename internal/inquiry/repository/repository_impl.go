package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/hearthshare/inquiry/internal/inquiry/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, inquiry *domain.Inquiry) error {
	return db.WithContext(ctx).Create(inquiry).Error
}

func (r *repo) FindByClientID(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := db.WithContext(ctx).Where("client_id = ?", clientID).First(&inquiry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoInquiry
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Inquiry{}).Error
}
