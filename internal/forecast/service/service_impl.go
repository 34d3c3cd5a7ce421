package service

import (
	"context"
	"sync"

	"github.com/hearthshare/inquiry/internal/forecast/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository

	mu       sync.RWMutex
	snapshot *domain.Snapshot
}

func New(p Params) domain.Provider {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("forecast.service"),
		repo:     p.Repo,
		snapshot: domain.NewSnapshot(nil),
	}
}

// Snapshot returns the most recently loaded forecast table. An empty snapshot
// means every zip code classifies as "no data".
func (s *Service) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Service) Refresh(ctx context.Context) error {
	rows, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return err
	}

	snapshot := domain.NewSnapshot(rows)
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.Info("forecast snapshot refreshed", zap.Int("zip_codes", snapshot.Len()))
	return nil
}
