package core

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureCrash swaps output and exit for the duration of a test
func captureCrash(t *testing.T) (*syncBuffer, chan int) {
	t.Helper()
	buf := &syncBuffer{}
	codes := make(chan int, 1)

	prevOut, prevExit := crashOutput, crashExit
	crashOutput = buf
	crashExit = func(code int) { codes <- code }
	t.Cleanup(func() {
		crashOutput, crashExit = prevOut, prevExit
		SetCrashReset(nil)
	})
	return buf, codes
}

func TestHandleCrashNil(t *testing.T) {
	buf, codes := captureCrash(t)

	HandleCrash(nil)

	if buf.String() != "" {
		t.Errorf("Expected no output, got %q", buf.String())
	}
	select {
	case code := <-codes:
		t.Errorf("Expected no exit, got code %d", code)
	default:
	}
}

func TestHandleCrashResetsAndExits(t *testing.T) {
	buf, codes := captureCrash(t)

	resets := 0
	SetCrashReset(func() { resets++ })

	HandleCrash("boom")

	if resets != 1 {
		t.Errorf("Expected 1 reset, got %d", resets)
	}
	if code := <-codes; code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, "boom") || !strings.Contains(out, "Stack Trace") {
		t.Errorf("Expected panic value and stack trace, got %q", out)
	}

	// Reset runs at most once
	HandleCrash("again")
	<-codes
	if resets != 1 {
		t.Errorf("Expected reset to run once, got %d", resets)
	}
}

func TestGoRecoversPanic(t *testing.T) {
	buf, codes := captureCrash(t)

	Go(func() { panic("poller died") })

	select {
	case code := <-codes:
		if code != 1 {
			t.Errorf("Expected exit code 1, got %d", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected crash handler to run")
	}
	if !strings.Contains(buf.String(), "poller died") {
		t.Errorf("Expected panic value in output, got %q", buf.String())
	}
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected function to run")
	}
}
