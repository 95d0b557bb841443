package domain

// Error is a caller-visible rejection. Every failure carries one of the fixed
// tracker codes so API consumers can branch on the number, not the text.
type Error struct {
	Code   uint32
	Reason string
}

func (e *Error) Error() string { return e.Reason }

var (
	ErrNotAuthorized         = &Error{Code: 100, Reason: "not_authorized"}
	ErrInvalidFarmID         = &Error{Code: 101, Reason: "invalid_farm_id"}
	ErrInvalidAmount         = &Error{Code: 102, Reason: "invalid_amount"}
	ErrInvalidTimestamp      = &Error{Code: 103, Reason: "invalid_timestamp"}
	ErrInvalidQuota          = &Error{Code: 104, Reason: "invalid_quota"}
	ErrInvalidPeriod         = &Error{Code: 105, Reason: "invalid_period"}
	ErrFarmAlreadyRegistered = &Error{Code: 106, Reason: "farm_already_registered"}
	ErrFarmNotFound          = &Error{Code: 107, Reason: "farm_not_found"}
	ErrLogAlreadyExists      = &Error{Code: 108, Reason: "log_already_exists"}
	ErrOracleNotVerified     = &Error{Code: 109, Reason: "oracle_not_verified"}
	ErrInvalidMinUsage       = &Error{Code: 110, Reason: "invalid_min_usage"}
	ErrInvalidMaxUsage       = &Error{Code: 111, Reason: "invalid_max_usage"}
	ErrUpdateNotAllowed      = &Error{Code: 112, Reason: "update_not_allowed"}
	ErrInvalidUpdateParam    = &Error{Code: 113, Reason: "invalid_update_param"}
	ErrMaxLogsExceeded       = &Error{Code: 114, Reason: "max_logs_exceeded"}
	ErrInvalidUsageType      = &Error{Code: 115, Reason: "invalid_usage_type"}
	ErrInvalidEfficiencyRate = &Error{Code: 116, Reason: "invalid_efficiency_rate"}
	ErrInvalidGracePeriod    = &Error{Code: 117, Reason: "invalid_grace_period"}
	ErrInvalidLocation       = &Error{Code: 118, Reason: "invalid_location"}
	ErrInvalidUnit           = &Error{Code: 119, Reason: "invalid_unit"}
	ErrInvalidStatus         = &Error{Code: 120, Reason: "invalid_status"}
)
