package engine

import "time"

// Clock drives Step at the state's current period
// Owned by the session goroutine, not safe for concurrent use
type Clock struct {
	factory TickerFactory
	ticker  Ticker
	period  time.Duration
}

// NewClock creates a stopped clock; nil factory uses NewTimeTicker
func NewClock(factory TickerFactory) *Clock {
	if factory == nil {
		factory = NewTimeTicker
	}
	return &Clock{factory: factory}
}

// Sync aligns the ticker with the desired state
// Stops when inactive; a period change replaces the ticker so the next tick is a full period away
func (c *Clock) Sync(active bool, period time.Duration) {
	if !active || period <= 0 {
		c.Stop()
		return
	}
	if c.ticker != nil && c.period == period {
		return
	}
	c.Stop()
	c.ticker = c.factory(period)
	c.period = period
}

// C returns the tick channel, nil while stopped so a select never fires on it
func (c *Clock) C() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C()
}

// Stop releases the ticker
func (c *Clock) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.period = 0
}

// Active reports whether a ticker is running
func (c *Clock) Active() bool { return c.ticker != nil }

// Period returns the running ticker period, 0 when stopped
func (c *Clock) Period() time.Duration { return c.period }
