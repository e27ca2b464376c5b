package services

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_BurstCollapsesToLastCall(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired int32
	var last int32
	for i := 1; i <= 5; i++ {
		i := i
		d.Call(func() {
			atomic.AddInt32(&fired, 1)
			atomic.StoreInt32(&last, int32(i))
		})
	}

	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
	if got := atomic.LoadInt32(&last); got != 5 {
		t.Errorf("last call applied = %d, want 5", got)
	}
}

func TestDebouncer_NewCallResetsQuietPeriod(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired int32
	d.Call(func() { atomic.AddInt32(&fired, 1) })

	// Keep rescheduling before the quiet period elapses.
	for i := 0; i < 3; i++ {
		time.Sleep(15 * time.Millisecond)
		d.Call(func() { atomic.AddInt32(&fired, 1) })
		if got := atomic.LoadInt32(&fired); got != 0 {
			t.Fatalf("fired early after %d reschedules", i+1)
		}
	}

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDebouncer_FlushRunsPendingImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)

	ran := false
	d.Call(func() { ran = true })
	d.Flush()

	if !ran {
		t.Error("Flush did not run the pending call")
	}

	// Flush with nothing pending is a no-op.
	d.Flush()

	// The original call must not fire a second time later.
	time.Sleep(20 * time.Millisecond)
}

func TestDebouncer_StopDiscardsPending(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var fired int32
	d.Call(func() { atomic.AddInt32(&fired, 1) })
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("fired %d times after Stop, want 0", got)
	}
}

func TestNewDebouncer_DefaultInterval(t *testing.T) {
	d := NewDebouncer(0)
	if d.quiet != DebounceInterval {
		t.Errorf("quiet = %v, want %v", d.quiet, DebounceInterval)
	}
}
