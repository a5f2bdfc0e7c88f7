package inactivity

import (
	"github.com/revendahq/revenda/internal/inactivity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inactivity",
	fx.Provide(service.New),
)
