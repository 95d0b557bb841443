package service

import (
	"context"
	"sync"

	"github.com/aquametric/aquatrack/internal/clock"
	"github.com/aquametric/aquatrack/internal/config"
	"github.com/aquametric/aquatrack/internal/identity"
	"github.com/aquametric/aquatrack/internal/oracle"
	"github.com/aquametric/aquatrack/internal/principal"
	trackerdomain "github.com/aquametric/aquatrack/internal/tracker/domain"
	treasurydomain "github.com/aquametric/aquatrack/internal/treasury/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Cfg      config.Config
	Clock    clock.Clock
	Treasury treasurydomain.Service
	Oracles  oracle.Registry
}

// Service owns the tracker State. Every operation takes the mutex, evaluates
// against the current snapshot and either applies its full effect or none of
// it. The mutex is the serialized-execution boundary: no partial effects from
// two requests ever interleave.
type Service struct {
	mu sync.Mutex

	log      *zap.Logger
	clock    clock.Clock
	treasury treasurydomain.Service
	oracles  oracle.Registry
	state    *trackerdomain.State
}

func NewService(p Params) trackerdomain.Service {
	return &Service{
		log:      p.Log.Named("tracker.service"),
		clock:    p.Clock,
		treasury: p.Treasury,
		oracles:  p.Oracles,
		state:    trackerdomain.NewState(p.Cfg.MaxFarms, p.Cfg.LoggingFee),
	}
}

func (s *Service) SetOracleContract(ctx context.Context, oracleContract principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oracleContract.IsZero() || oracleContract.IsBurn() {
		return trackerdomain.ErrNotAuthorized
	}
	if !s.state.Oracle.IsZero() {
		return trackerdomain.ErrNotAuthorized
	}

	if s.oracles != nil && !s.oracles.IsVerified(oracleContract) {
		s.log.Warn("designating unrecognized oracle", zap.String("oracle", oracleContract.String()))
	}

	s.state.Oracle = oracleContract
	s.log.Info("oracle contract designated", zap.String("oracle", oracleContract.String()))
	return nil
}

func (s *Service) SetLoggingFee(ctx context.Context, fee uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Oracle.IsZero() {
		return trackerdomain.ErrNotAuthorized
	}

	s.state.LoggingFee = fee
	s.log.Info("logging fee changed", zap.Uint64("fee", fee))
	return nil
}

func (s *Service) RegisterFarm(ctx context.Context, req trackerdomain.RegisterFarmRequest) (uint64, error) {
	caller, ok := identity.CallerFromContext(ctx)
	if !ok {
		return 0, trackerdomain.ErrNotAuthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.NextID >= s.state.MaxFarms {
		return 0, trackerdomain.ErrMaxLogsExceeded
	}
	if s.state.Oracle.IsZero() {
		return 0, trackerdomain.ErrOracleNotVerified
	}
	if _, exists := s.state.OwnerIndex[caller]; exists {
		return 0, trackerdomain.ErrFarmAlreadyRegistered
	}
	if err := validateRegistration(req); err != nil {
		return 0, err
	}

	// Fee settles before any state changes; a failed transfer aborts the
	// registration with the state untouched.
	if err := s.treasury.Transfer(ctx, caller, s.state.Oracle, s.state.LoggingFee, "farm_registration"); err != nil {
		s.log.Warn("registration fee transfer failed",
			zap.String("owner", caller.String()),
			zap.Uint64("fee", s.state.LoggingFee),
			zap.Error(err),
		)
		return 0, err
	}

	id := s.state.NextID
	now := s.clock.Now()
	s.state.Farms[id] = &trackerdomain.Farm{
		ID:             id,
		Owner:          caller,
		Quota:          req.Quota,
		TotalUsage:     0,
		LastUpdate:     now,
		EfficiencyRate: req.EfficiencyRate,
		Period:         req.Period,
		Location:       req.Location,
		Unit:           trackerdomain.Unit(req.Unit),
		Status:         true,
		MinUsage:       req.MinUsage,
		MaxUsage:       req.MaxUsage,
		UsageType:      trackerdomain.UsageType(req.UsageType),
		GracePeriod:    req.GracePeriod,
	}
	s.state.OwnerIndex[caller] = id
	s.state.NextID++

	s.log.Info("farm registered",
		zap.Uint64("farm_id", id),
		zap.String("owner", caller.String()),
		zap.Uint64("quota", req.Quota),
	)
	return id, nil
}

// validateRegistration applies the field rules in their fixed order so the
// first failing rule determines the reported code.
func validateRegistration(req trackerdomain.RegisterFarmRequest) error {
	if req.Quota == 0 {
		return trackerdomain.ErrInvalidQuota
	}
	if req.EfficiencyRate > 100 {
		return trackerdomain.ErrInvalidEfficiencyRate
	}
	if req.Period == 0 {
		return trackerdomain.ErrInvalidPeriod
	}
	if req.Location == "" || len(req.Location) > trackerdomain.MaxLocationLen {
		return trackerdomain.ErrInvalidLocation
	}
	if !trackerdomain.Unit(req.Unit).Valid() {
		return trackerdomain.ErrInvalidUnit
	}
	if req.MinUsage == 0 {
		return trackerdomain.ErrInvalidMinUsage
	}
	if req.MaxUsage == 0 {
		return trackerdomain.ErrInvalidMaxUsage
	}
	if !trackerdomain.UsageType(req.UsageType).Valid() {
		return trackerdomain.ErrInvalidUsageType
	}
	if req.GracePeriod > trackerdomain.MaxGracePeriod {
		return trackerdomain.ErrInvalidGracePeriod
	}
	return nil
}

// LogUsage appends one metered event and grows the farm's running total.
// Every rejection reports not_authorized; consumers rely on the coarse code.
func (s *Service) LogUsage(ctx context.Context, farmID, amount, timestamp uint64) error {
	caller, ok := identity.CallerFromContext(ctx)
	if !ok {
		return trackerdomain.ErrNotAuthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	farm, exists := s.state.Farms[farmID]
	if !exists {
		return trackerdomain.ErrNotAuthorized
	}
	if caller != farm.Owner && caller != s.state.Oracle {
		return trackerdomain.ErrNotAuthorized
	}
	if amount == 0 {
		return trackerdomain.ErrNotAuthorized
	}
	if timestamp < s.clock.Now() {
		return trackerdomain.ErrNotAuthorized
	}

	key := trackerdomain.LogKey{FarmID: farmID, Seq: uint64(len(s.state.UsageLogs))}
	if _, taken := s.state.UsageLogs[key]; taken {
		return trackerdomain.ErrNotAuthorized
	}

	s.state.UsageLogs[key] = &trackerdomain.UsageLog{
		Amount:    amount,
		Timestamp: timestamp,
		Reporter:  caller,
	}
	farm.TotalUsage += amount
	// Usage stamps the farm with the event time, not processing time.
	farm.LastUpdate = timestamp

	s.log.Info("usage logged",
		zap.Uint64("farm_id", farmID),
		zap.Uint64("amount", amount),
		zap.Uint64("timestamp", timestamp),
		zap.String("reporter", caller.String()),
	)
	return nil
}

// UpdateFarm overwrites quota and efficiency rate plus the farm's single
// update slot. Every rejection reports update_not_allowed.
func (s *Service) UpdateFarm(ctx context.Context, farmID, quota, efficiencyRate uint64) error {
	caller, ok := identity.CallerFromContext(ctx)
	if !ok {
		return trackerdomain.ErrUpdateNotAllowed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	farm, exists := s.state.Farms[farmID]
	if !exists {
		return trackerdomain.ErrUpdateNotAllowed
	}
	if caller != farm.Owner {
		return trackerdomain.ErrUpdateNotAllowed
	}
	if quota == 0 {
		return trackerdomain.ErrUpdateNotAllowed
	}
	if efficiencyRate > 100 {
		return trackerdomain.ErrUpdateNotAllowed
	}

	now := s.clock.Now()
	farm.Quota = quota
	farm.EfficiencyRate = efficiencyRate
	farm.LastUpdate = now
	s.state.Updates[farmID] = &trackerdomain.FarmUpdate{
		Quota:          quota,
		EfficiencyRate: efficiencyRate,
		Timestamp:      now,
		Updater:        caller,
	}

	s.log.Info("farm updated",
		zap.Uint64("farm_id", farmID),
		zap.Uint64("quota", quota),
		zap.Uint64("efficiency_rate", efficiencyRate),
	)
	return nil
}

func (s *Service) GetFarm(ctx context.Context, farmID uint64) (*trackerdomain.Farm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, exists := s.state.Farms[farmID]
	if !exists {
		return nil, trackerdomain.ErrFarmNotFound
	}
	copied := *farm
	return &copied, nil
}

// GetFarmUpdate returns the single most recent update slot for a farm.
func (s *Service) GetFarmUpdate(ctx context.Context, farmID uint64) (*trackerdomain.FarmUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update, exists := s.state.Updates[farmID]
	if !exists {
		return nil, trackerdomain.ErrFarmNotFound
	}
	copied := *update
	return &copied, nil
}

func (s *Service) FarmCount(ctx context.Context) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NextID
}

func (s *Service) FarmExists(ctx context.Context, owner principal.Principal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.state.OwnerIndex[owner]
	return exists
}

// RemainingQuota reports quota minus accumulated usage. Unknown farms report
// zero rather than an error, and over-quota farms go negative.
func (s *Service) RemainingQuota(ctx context.Context, farmID uint64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, exists := s.state.Farms[farmID]
	if !exists {
		return 0
	}
	return int64(farm.Quota) - int64(farm.TotalUsage)
}
