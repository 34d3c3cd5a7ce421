package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/client/session"
	"github.com/hearthshare/inquiry/internal/config"
	"github.com/hearthshare/inquiry/internal/eligibility"
	inquirydomain "github.com/hearthshare/inquiry/internal/inquiry/domain"
	"github.com/hearthshare/inquiry/internal/wizard"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	sessions   *session.Manager
	registry   *eligibility.Registry
	clientsvc  clientdomain.Service
	inquirysvc inquirydomain.Service
	wizardsvc  *wizard.Service
	metrics    *Metrics
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Sessions   *session.Manager
	Registry   *eligibility.Registry
	ClientSvc  clientdomain.Service
	InquirySvc inquirydomain.Service
	WizardSvc  *wizard.Service
	Metrics    *Metrics
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		sessions:   p.Sessions,
		registry:   p.Registry,
		clientsvc:  p.ClientSvc,
		inquirysvc: p.InquirySvc,
		wizardsvc:  p.WizardSvc,
		metrics:    p.Metrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	inquiry := s.engine.Group("/inquiry")

	apply := inquiry.Group("/apply", s.WizardSession())
	{
		apply.GET("/:step", s.GetWizardStep)
		apply.POST("/:step", s.PostWizardStep)
	}

	inquiry.GET("/outcome/:slug", s.GetOutcome)
	inquiry.GET("/submitted", s.AuthRequired(), s.GetSubmitted)
}
