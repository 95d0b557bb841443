package domain

import (
	"context"

	"github.com/aquametric/aquatrack/internal/principal"
)

// RegisterFarmRequest carries every field validated at registration, in the
// order the rules are applied.
type RegisterFarmRequest struct {
	Quota          uint64 `json:"quota"`
	EfficiencyRate uint64 `json:"efficiency_rate"`
	Period         uint64 `json:"period"`
	Location       string `json:"location"`
	Unit           string `json:"unit"`
	MinUsage       uint64 `json:"min_usage"`
	MaxUsage       uint64 `json:"max_usage"`
	UsageType      string `json:"usage_type"`
	GracePeriod    uint64 `json:"grace_period"`
}

// Service is the validation-and-mutation engine over the tracker State. The
// calling principal is taken from the request context; mutating operations
// fail with a tracker Error and leave the state untouched.
//
// RegisterFarm reports the precise rule that failed. LogUsage and UpdateFarm
// deliberately collapse every failure into one generic code each
// (not_authorized and update_not_allowed); API consumers depend on that
// coarser contract.
type Service interface {
	SetOracleContract(ctx context.Context, oracleContract principal.Principal) error
	SetLoggingFee(ctx context.Context, fee uint64) error
	RegisterFarm(ctx context.Context, req RegisterFarmRequest) (uint64, error)
	LogUsage(ctx context.Context, farmID, amount, timestamp uint64) error
	UpdateFarm(ctx context.Context, farmID, quota, efficiencyRate uint64) error

	GetFarm(ctx context.Context, farmID uint64) (*Farm, error)
	GetFarmUpdate(ctx context.Context, farmID uint64) (*FarmUpdate, error)
	FarmCount(ctx context.Context) uint64
	FarmExists(ctx context.Context, owner principal.Principal) bool
	RemainingQuota(ctx context.Context, farmID uint64) int64
}
