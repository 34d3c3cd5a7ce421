package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/hearthshare/inquiry/internal/address"
	"github.com/hearthshare/inquiry/internal/analytics"
	"github.com/hearthshare/inquiry/internal/client"
	"github.com/hearthshare/inquiry/internal/client/session"
	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/internal/config"
	"github.com/hearthshare/inquiry/internal/eligibility"
	"github.com/hearthshare/inquiry/internal/forecast"
	"github.com/hearthshare/inquiry/internal/inquiry"
	"github.com/hearthshare/inquiry/internal/lifecycle"
	"github.com/hearthshare/inquiry/internal/logger"
	"github.com/hearthshare/inquiry/internal/migration"
	"github.com/hearthshare/inquiry/internal/server"
	"github.com/hearthshare/inquiry/internal/wizard"
	"github.com/hearthshare/inquiry/pkg/db"
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

		analytics.Module,
		eligibility.Module,
		forecast.Module,
		client.Module,
		session.Module,
		address.Module,
		lifecycle.Module,
		inquiry.Module,
		wizard.Module,

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
