package treasury

import (
	"github.com/aquametric/aquatrack/internal/treasury/domain"
	"github.com/aquametric/aquatrack/internal/treasury/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("treasury.service",
	fx.Provide(service.NewService),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Account{}, &domain.TransferRecord{})
}
