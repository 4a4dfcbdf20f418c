package engine

import "time"

// Ticker delivers periodic ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory starts a ticker with the given period
type TickerFactory func(period time.Duration) Ticker

// timeTicker wraps time.Ticker
type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker is the production TickerFactory
func NewTimeTicker(period time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(period)}
}

func (tt *timeTicker) C() <-chan time.Time { return tt.t.C }
func (tt *timeTicker) Stop()               { tt.t.Stop() }
