package forecast

import (
	"context"
	"time"

	"github.com/hearthshare/inquiry/internal/forecast/domain"
	"github.com/hearthshare/inquiry/internal/forecast/repository"
	"github.com/hearthshare/inquiry/internal/forecast/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const refreshInterval = time.Hour

var Module = fx.Module("forecast.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Invoke(registerRefresh),
)

// registerRefresh loads the snapshot at startup and keeps it fresh. The table
// itself is rewritten by an out-of-band pipeline.
func registerRefresh(lc fx.Lifecycle, provider domain.Provider, log *zap.Logger) {
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := provider.Refresh(ctx); err != nil {
				return err
			}
			go func() {
				ticker := time.NewTicker(refreshInterval)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case <-ticker.C:
						if err := provider.Refresh(context.Background()); err != nil {
							log.Warn("forecast refresh failed", zap.Error(err))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = ctx
			close(stop)
			return nil
		},
	})
}
