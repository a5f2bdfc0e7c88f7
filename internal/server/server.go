package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/revendahq/revenda/internal/account"
	"github.com/revendahq/revenda/internal/catalog"
	"github.com/revendahq/revenda/internal/config"
	"github.com/revendahq/revenda/internal/feesettings"
	"github.com/revendahq/revenda/internal/inactivity"
	inactivitydomain "github.com/revendahq/revenda/internal/inactivity/domain"
	"github.com/revendahq/revenda/internal/metrics"
	"github.com/revendahq/revenda/internal/pricing"
	pricingdomain "github.com/revendahq/revenda/internal/pricing/domain"
	"github.com/revendahq/revenda/internal/webhook"
	webhookdomain "github.com/revendahq/revenda/internal/webhook/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	metrics.Module,
	account.Module,
	catalog.Module,
	feesettings.Module,
	pricing.Module,
	webhook.Module,
	inactivity.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	pricingSvc    pricingdomain.Service
	webhookSvc    webhookdomain.Service
	inactivitySvc inactivitydomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	PricingSvc    pricingdomain.Service
	WebhookSvc    webhookdomain.Service
	InactivitySvc inactivitydomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		pricingSvc:    p.PricingSvc,
		webhookSvc:    p.WebhookSvc,
		inactivitySvc: p.InactivitySvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.POST("/pricing/recalculate", s.RecalculatePrices)

	api.GET("/webhooks/subscriptions", s.ListWebhookSubscriptions)
	api.PUT("/webhooks/subscriptions/:event_type", s.UpdateWebhookSubscription)
	api.POST("/webhooks/subscriptions/:event_type/secret", s.RegenerateWebhookSecret)
	api.POST("/webhooks/dispatch", s.DispatchWebhook)

	api.POST("/inactivity/scan", s.RunInactivityScan)
}
