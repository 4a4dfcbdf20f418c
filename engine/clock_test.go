package engine

import (
	"testing"
	"time"
)

func TestClockStartsStopped(t *testing.T) {
	var mt ManualTickers
	c := NewClock(mt.Factory())

	if c.Active() {
		t.Error("Expected new clock to be inactive")
	}
	if c.C() != nil {
		t.Error("Expected nil channel while inactive")
	}
	if mt.Count() != 0 {
		t.Errorf("Expected no tickers, got %d", mt.Count())
	}
}

func TestClockSyncStartsAndStops(t *testing.T) {
	var mt ManualTickers
	c := NewClock(mt.Factory())

	c.Sync(true, 150*time.Millisecond)
	if !c.Active() || c.C() == nil {
		t.Fatal("Expected active clock after Sync(true)")
	}
	if got := mt.Latest().Period(); got != 150*time.Millisecond {
		t.Errorf("Expected period 150ms, got %v", got)
	}

	first := mt.Latest()
	c.Sync(false, 150*time.Millisecond)
	if c.Active() {
		t.Error("Expected inactive clock after Sync(false)")
	}
	if !first.Stopped() {
		t.Error("Expected ticker stopped on deactivate")
	}
	if c.C() != nil {
		t.Error("Expected nil channel after stop")
	}
}

func TestClockSamePeriodKeepsTicker(t *testing.T) {
	var mt ManualTickers
	c := NewClock(mt.Factory())

	c.Sync(true, 100*time.Millisecond)
	c.Sync(true, 100*time.Millisecond)
	c.Sync(true, 100*time.Millisecond)

	if mt.Count() != 1 {
		t.Errorf("Expected a single ticker for an unchanged period, got %d", mt.Count())
	}
}

func TestClockPeriodChangeReplacesTicker(t *testing.T) {
	var mt ManualTickers
	c := NewClock(mt.Factory())

	c.Sync(true, 150*time.Millisecond)
	old := mt.Latest()
	c.Sync(true, 140*time.Millisecond)

	if mt.Count() != 2 {
		t.Fatalf("Expected new ticker on period change, got %d tickers", mt.Count())
	}
	if !old.Stopped() {
		t.Error("Expected old ticker stopped")
	}
	if c.Period() != 140*time.Millisecond {
		t.Errorf("Expected period 140ms, got %v", c.Period())
	}
}

func TestClockRestartAfterStop(t *testing.T) {
	var mt ManualTickers
	c := NewClock(mt.Factory())

	c.Sync(true, 70*time.Millisecond)
	c.Stop()
	c.Sync(true, 70*time.Millisecond)

	if mt.Count() != 2 {
		t.Errorf("Expected fresh ticker after stop, got %d", mt.Count())
	}
	if c.Period() != 70*time.Millisecond {
		t.Errorf("Expected period 70ms, got %v", c.Period())
	}
}

func TestClockNonPositivePeriodStops(t *testing.T) {
	var mt ManualTickers
	c := NewClock(mt.Factory())

	c.Sync(true, 0)
	if c.Active() {
		t.Error("Expected zero period to leave clock stopped")
	}
}

func TestClockRealTicker(t *testing.T) {
	c := NewClock(nil)
	c.Sync(true, 5*time.Millisecond)
	defer c.Stop()

	select {
	case <-c.C():
	case <-time.After(time.Second):
		t.Fatal("Expected a tick from the real ticker")
	}
}
