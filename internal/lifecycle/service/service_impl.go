package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/internal/lifecycle/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("lifecycle.service"),
		clock: p.Clock,
	}
}

func (s *Service) SubmitInquiry(ctx context.Context, clientID, inquiryID snowflake.ID) error {
	err := s.transition(ctx, clientID, clientdomain.StageLead, clientdomain.StageInquiryInReview)
	if err != nil {
		return err
	}
	s.log.Info("client inquiry submitted",
		zap.String("client_id", clientID.String()),
		zap.String("inquiry_id", inquiryID.String()),
		zap.String("stage", clientdomain.StageInquiryInReview),
	)
	return nil
}

// transition flips the stage only when the client is currently in `from`.
// The guarded UPDATE doubles as the concurrency check.
func (s *Service) transition(ctx context.Context, clientID snowflake.ID, from, to string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&clientdomain.Client{}).
			Where("id = ? AND stage = ?", clientID, from).
			Updates(map[string]any{
				"stage":      to,
				"updated_at": s.clock.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvalidTransition
		}
		return nil
	})
}
