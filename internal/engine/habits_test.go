package engine

import (
	"testing"
	"time"

	"github.com/verdantapp/sprout/internal/model"
)

func completedTask(id string, at time.Time, mood model.Mood) model.Task {
	return model.Task{
		ID:          id,
		Name:        "task " + id,
		Deadline:    at,
		Done:        true,
		CompletedAt: &at,
		Mood:        mood,
	}
}

func TestDetectHabitMorningFocused(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	day := func(d, hour int) time.Time {
		return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
	}

	completed := []model.Task{
		completedTask("a", day(3, 6), model.MoodFocused),
		completedTask("b", day(4, 7), model.MoodFocused),
		completedTask("c", day(5, 8), model.MoodFocused),
		completedTask("d", day(6, 9), model.MoodFocused),
		completedTask("e", day(7, 6), model.MoodFocused),
	}

	habit, ok := DetectHabit(completed, nil, now)
	if !ok {
		t.Fatal("expected a habit to be detected")
	}
	if habit.Name != "Morning coding session when focused" {
		t.Errorf("name = %q", habit.Name)
	}
	if habit.Frequency != model.FrequencyDaily {
		t.Errorf("frequency = %s, want daily", habit.Frequency)
	}
	if habit.Streak != 0 {
		t.Errorf("streak = %d, want 0", habit.Streak)
	}
	if habit.Mood != model.MoodFocused {
		t.Errorf("mood = %s, want focused", habit.Mood)
	}
}

func TestDetectHabitBelowThreshold(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	at := now.Add(-24 * time.Hour)

	completed := []model.Task{
		completedTask("a", at, model.MoodFocused),
		completedTask("b", at, model.MoodFocused),
		completedTask("c", at, model.MoodFocused),
		completedTask("d", at, model.MoodFocused),
	}
	if _, ok := DetectHabit(completed, nil, now); ok {
		t.Error("detected a habit from four completions")
	}
}

func TestDetectHabitLaterBucketWinsTies(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	day := func(d, hour int) time.Time {
		return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
	}

	// Three morning and three night completions: the night bucket is
	// enumerated later and must take the tie.
	completed := []model.Task{
		completedTask("a", day(3, 6), model.MoodNone),
		completedTask("b", day(4, 7), model.MoodNone),
		completedTask("c", day(5, 8), model.MoodNone),
		completedTask("d", day(3, 23), model.MoodNone),
		completedTask("e", day(4, 2), model.MoodNone),
		completedTask("f", day(5, 23), model.MoodNone),
	}

	habit, ok := DetectHabit(completed, nil, now)
	if !ok {
		t.Fatal("expected a habit to be detected")
	}
	if habit.Name != "Night owl session" {
		t.Errorf("name = %q, want the night bucket to win the tie", habit.Name)
	}
	if habit.Mood != model.MoodNone {
		t.Errorf("mood = %s, want none", habit.Mood)
	}
}

func TestDetectHabitSuppressesDuplicates(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	day := func(d, hour int) time.Time {
		return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
	}

	completed := []model.Task{
		completedTask("a", day(3, 6), model.MoodFocused),
		completedTask("b", day(4, 7), model.MoodFocused),
		completedTask("c", day(5, 8), model.MoodFocused),
		completedTask("d", day(6, 9), model.MoodFocused),
		completedTask("e", day(7, 6), model.MoodFocused),
	}
	existing := []model.Habit{
		{ID: "h1", Name: "Morning coding session when focused", Frequency: model.FrequencyDaily},
	}
	if _, ok := DetectHabit(completed, existing, now); ok {
		t.Error("re-detected an existing habit")
	}

	// A morning habit with a different mood does not suppress.
	other := []model.Habit{
		{ID: "h2", Name: "Morning coding session when relaxed", Frequency: model.FrequencyDaily},
	}
	if _, ok := DetectHabit(completed, other, now); !ok {
		t.Error("a different-mood habit suppressed detection")
	}
}

func TestAdvanceStreak(t *testing.T) {
	today := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	t.Run("same day is untouched", func(t *testing.T) {
		last := time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC)
		h := model.Habit{Streak: 3, LastCompleted: &last}
		if AdvanceStreak(&h, today) {
			t.Error("same-day pass reported a change")
		}
		if h.Streak != 3 {
			t.Errorf("streak = %d, want 3", h.Streak)
		}
	})

	t.Run("one elapsed day advances", func(t *testing.T) {
		last := time.Date(2026, time.March, 9, 22, 0, 0, 0, time.UTC)
		h := model.Habit{Streak: 3, LastCompleted: &last}
		if !AdvanceStreak(&h, today) {
			t.Fatal("expected a change")
		}
		if h.Streak != 4 {
			t.Errorf("streak = %d, want 4", h.Streak)
		}
		if h.LastCompleted.Day() != 10 {
			t.Errorf("date advanced to day %d, want 10", h.LastCompleted.Day())
		}
	})

	t.Run("a gap resets the streak", func(t *testing.T) {
		last := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
		h := model.Habit{Streak: 7, LastCompleted: &last}
		if !AdvanceStreak(&h, today) {
			t.Fatal("expected a change")
		}
		if h.Streak != 0 {
			t.Errorf("streak = %d, want 0", h.Streak)
		}
		if !h.LastCompleted.Equal(last) {
			t.Error("reset moved the completion date")
		}
	})

	t.Run("reset is idempotent", func(t *testing.T) {
		last := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
		h := model.Habit{Streak: 0, LastCompleted: &last}
		if AdvanceStreak(&h, today) {
			t.Error("already-reset habit reported a change")
		}
	})

	t.Run("never completed", func(t *testing.T) {
		h := model.Habit{Streak: 0}
		if AdvanceStreak(&h, today) {
			t.Error("habit without completions reported a change")
		}
	})
}
