package clock

// FakeClock is a manually advanced Clock for tests.
type FakeClock struct {
	now uint64
}

func NewFakeClock(tick uint64) *FakeClock {
	return &FakeClock{now: tick}
}

func (c *FakeClock) Now() uint64 {
	return c.now
}

func (c *FakeClock) Set(tick uint64) {
	if tick > c.now {
		c.now = tick
	}
}

func (c *FakeClock) Advance(ticks uint64) {
	c.now += ticks
}
