package webhook

import (
	"net/http"

	"github.com/revendahq/revenda/internal/config"
	"github.com/revendahq/revenda/internal/webhook/repository"
	"github.com/revendahq/revenda/internal/webhook/service"
	"go.uber.org/fx"
)

var Module = fx.Module("webhook",
	fx.Provide(ProvideClient),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

func ProvideClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.WebhookTimeout}
}
