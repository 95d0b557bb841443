package tracker

import (
	"github.com/aquametric/aquatrack/internal/tracker/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tracker.service",
	fx.Provide(service.NewService),
)
