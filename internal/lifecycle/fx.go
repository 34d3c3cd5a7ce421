package lifecycle

import (
	"github.com/hearthshare/inquiry/internal/lifecycle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("lifecycle.service",
	fx.Provide(service.New),
)
