package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/revendahq/revenda/internal/clock"
	"github.com/revendahq/revenda/internal/config"
	"github.com/revendahq/revenda/internal/logger"
	"github.com/revendahq/revenda/internal/migration"
	"github.com/revendahq/revenda/internal/scheduler"
	"github.com/revendahq/revenda/internal/server"
	"github.com/revendahq/revenda/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP API (pulls in the domain modules) and the embedded scheduler
		server.Module,
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
