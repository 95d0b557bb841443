// Package clock supplies the monotonically non-decreasing tick counter used
// for farm timestamps and the usage backdating check.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock reports the current tick. Ticks never decrease between calls.
type Clock interface {
	Now() uint64
}

// SystemClock ticks in unix seconds.
type SystemClock struct{}

func NewSystemClock() *SystemClock { return &SystemClock{} }

func (SystemClock) Now() uint64 { return uint64(time.Now().UTC().Unix()) }

// Module wires the system clock for the application.
var Module = fx.Module("clock",
	fx.Provide(
		fx.Annotate(NewSystemClock, fx.As(new(Clock))),
	),
)
