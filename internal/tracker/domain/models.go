// Package domain defines the farm registry records and the tracker state
// aggregate they live in.
package domain

import (
	"github.com/aquametric/aquatrack/internal/principal"
)

// Unit is the measurement unit a farm reports usage in.
type Unit string

const (
	UnitLiters      Unit = "liters"
	UnitGallons     Unit = "gallons"
	UnitCubicMeters Unit = "cubic-meters"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitLiters, UnitGallons, UnitCubicMeters:
		return true
	default:
		return false
	}
}

// UsageType classifies what a farm draws water for.
type UsageType string

const (
	UsageTypeIrrigation UsageType = "irrigation"
	UsageTypeDomestic   UsageType = "domestic"
	UsageTypeIndustrial UsageType = "industrial"
)

func (t UsageType) Valid() bool {
	switch t {
	case UsageTypeIrrigation, UsageTypeDomestic, UsageTypeIndustrial:
		return true
	default:
		return false
	}
}

// MaxLocationLen caps the location field at registration.
const MaxLocationLen = 100

// MaxGracePeriod caps the grace period accepted at registration.
const MaxGracePeriod = 30

// Farm is a registered water-usage subject. Owner is immutable after
// registration; TotalUsage only ever grows.
type Farm struct {
	ID             uint64              `json:"id"`
	Owner          principal.Principal `json:"owner"`
	Quota          uint64              `json:"quota"`
	TotalUsage     uint64              `json:"total_usage"`
	LastUpdate     uint64              `json:"last_update"`
	EfficiencyRate uint64              `json:"efficiency_rate"`
	Period         uint64              `json:"period"`
	Location       string              `json:"location"`
	Unit           Unit                `json:"unit"`
	Status         bool                `json:"status"`
	MinUsage       uint64              `json:"min_usage"`
	MaxUsage       uint64              `json:"max_usage"`
	UsageType      UsageType           `json:"usage_type"`
	GracePeriod    uint64              `json:"grace_period"`
}

// FarmUpdate records the most recent parameter change for a farm. It is a
// single slot, overwritten on every update.
type FarmUpdate struct {
	Quota          uint64              `json:"quota"`
	EfficiencyRate uint64              `json:"efficiency_rate"`
	Timestamp      uint64              `json:"timestamp"`
	Updater        principal.Principal `json:"updater"`
}

// UsageLog is one metered usage event, immutable once written.
type UsageLog struct {
	Amount    uint64              `json:"amount"`
	Timestamp uint64              `json:"timestamp"`
	Reporter  principal.Principal `json:"reporter"`
}

// LogKey addresses a usage log by farm and ledger sequence.
type LogKey struct {
	FarmID uint64
	Seq    uint64
}
