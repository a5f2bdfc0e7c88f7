package pricing

import (
	"context"

	"github.com/revendahq/revenda/internal/config"
	"github.com/revendahq/revenda/internal/pricing/domain"
	"github.com/revendahq/revenda/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing",
	fx.Provide(ProvideConfig),
	fx.Provide(service.New),
	fx.Invoke(registerLifecycle),
)

func ProvideConfig(cfg config.Config) service.Config {
	return service.Config{
		BatchSize:  cfg.PricingBatchSize,
		BatchDelay: cfg.PricingBatchDelay,
	}
}

func registerLifecycle(lc fx.Lifecycle, svc domain.Service) {
	engine, ok := svc.(*service.Service)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			engine.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return engine.Stop(ctx)
		},
	})
}
