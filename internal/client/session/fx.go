package session

import "go.uber.org/fx"

var Module = fx.Module("client.session",
	fx.Provide(NewManager),
)
