package client

import (
	"github.com/hearthshare/inquiry/internal/client/repository"
	"github.com/hearthshare/inquiry/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
