package upkeep

import (
	"testing"
	"time"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{ID: "later", Kind: KindHabitNudge, FireAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", Kind: KindDayRollover, FireAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{ID: "evt", Kind: KindHabitNudge, FireAt: now}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleHabitNudgeCarriesHabit(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	if err := engine.ScheduleHabitNudge("h1", time.Now().UTC().Add(20*time.Millisecond)); err != nil {
		t.Fatalf("schedule nudge: %v", err)
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Kind != KindHabitNudge || ev.HabitID != "h1" {
		t.Fatalf("event = %+v, want a habit nudge for h1", ev)
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func TestNextDayBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 59, 30, 0, time.UTC)
	want := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	if got := NextDayBoundary(now); !got.Equal(want) {
		t.Errorf("NextDayBoundary(%v) = %v, want %v", now, got, want)
	}

	// Midnight itself arms the following day, never the same instant.
	midnight := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	if got := NextDayBoundary(midnight); !got.After(midnight) {
		t.Errorf("boundary %v not after %v", got, midnight)
	}

	// Month rollover.
	eom := time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC)
	if got := NextDayBoundary(eom); got.Month() != time.March || got.Day() != 1 {
		t.Errorf("NextDayBoundary(%v) = %v", eom, got)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
