package oracle

import "go.uber.org/fx"

var Module = fx.Module("oracle.registry",
	fx.Provide(NewStaticRegistry),
)
