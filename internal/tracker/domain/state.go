package domain

import (
	"github.com/aquametric/aquatrack/internal/principal"
)

// State is the single aggregate the tracker mutates. It is owned by the
// tracker service, which serializes every operation against it; nothing else
// holds a reference to its maps.
type State struct {
	NextID     uint64
	MaxFarms   uint64
	LoggingFee uint64
	Oracle     principal.Principal

	Farms      map[uint64]*Farm
	Updates    map[uint64]*FarmUpdate
	OwnerIndex map[principal.Principal]uint64
	UsageLogs  map[LogKey]*UsageLog
}

// NewState builds an empty aggregate with the configured capacity and fee.
func NewState(maxFarms, loggingFee uint64) *State {
	return &State{
		MaxFarms:   maxFarms,
		LoggingFee: loggingFee,
		Farms:      make(map[uint64]*Farm),
		Updates:    make(map[uint64]*FarmUpdate),
		OwnerIndex: make(map[principal.Principal]uint64),
		UsageLogs:  make(map[LogKey]*UsageLog),
	}
}
