package engine

import (
	"sync"
	"time"
)

// ManualTicker is a Ticker driven by Fire, for tests
type ManualTicker struct {
	ch      chan time.Time
	period  time.Duration
	mu      sync.Mutex
	stopped bool
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }

func (m *ManualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

// Stopped reports whether Stop was called
func (m *ManualTicker) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Period returns the period the ticker was created with
func (m *ManualTicker) Period() time.Duration { return m.period }

// ManualTickers records every ticker it creates
type ManualTickers struct {
	mu      sync.Mutex
	tickers []*ManualTicker
}

// Factory returns a TickerFactory creating ManualTickers
func (mt *ManualTickers) Factory() TickerFactory {
	return func(period time.Duration) Ticker {
		t := &ManualTicker{ch: make(chan time.Time), period: period}
		mt.mu.Lock()
		mt.tickers = append(mt.tickers, t)
		mt.mu.Unlock()
		return t
	}
}

// Count returns how many tickers were created
func (mt *ManualTickers) Count() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.tickers)
}

// Latest returns the most recently created ticker, nil if none
func (mt *ManualTickers) Latest() *ManualTicker {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if len(mt.tickers) == 0 {
		return nil
	}
	return mt.tickers[len(mt.tickers)-1]
}

// Fire delivers one tick on the latest live ticker
// Returns false if no live ticker receives it within timeout
func (mt *ManualTickers) Fire(timeout time.Duration) bool {
	t := mt.Latest()
	if t == nil || t.Stopped() {
		return false
	}
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(timeout):
		return false
	}
}
