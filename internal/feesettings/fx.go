package feesettings

import (
	"github.com/revendahq/revenda/internal/feesettings/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("feesettings",
	fx.Provide(repository.Provide),
)
