package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/revendahq/revenda/internal/account"
	"github.com/revendahq/revenda/internal/clock"
	"github.com/revendahq/revenda/internal/config"
	"github.com/revendahq/revenda/internal/inactivity"
	"github.com/revendahq/revenda/internal/logger"
	"github.com/revendahq/revenda/internal/metrics"
	"github.com/revendahq/revenda/internal/migration"
	"github.com/revendahq/revenda/internal/scheduler"
	"github.com/revendahq/revenda/internal/webhook"
	"github.com/revendahq/revenda/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		metrics.Module,

		// Domain services required by the scan; no HTTP server here.
		account.Module,
		webhook.Module,
		inactivity.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
