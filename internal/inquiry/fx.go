package inquiry

import (
	"github.com/hearthshare/inquiry/internal/inquiry/repository"
	"github.com/hearthshare/inquiry/internal/inquiry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inquiry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
