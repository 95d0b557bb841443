package main

import (
	"github.com/aquametric/aquatrack/internal/clock"
	"github.com/aquametric/aquatrack/internal/config"
	"github.com/aquametric/aquatrack/internal/logger"
	"github.com/aquametric/aquatrack/internal/observability"
	"github.com/aquametric/aquatrack/internal/oracle"
	"github.com/aquametric/aquatrack/internal/server"
	"github.com/aquametric/aquatrack/internal/tracker"
	"github.com/aquametric/aquatrack/internal/treasury"
	"github.com/aquametric/aquatrack/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		oracle.Module,
		treasury.Module,
		tracker.Module,

		server.Module,
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
