package engine

import (
	"testing"
	"time"

	"github.com/verdantapp/sprout/internal/model"
)

func TestBuildHorizonsBuckets(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	due := func(days int) time.Time { return now.AddDate(0, 0, days) }

	pending := []model.Task{
		{ID: "overdue", Name: "overdue", Deadline: due(-2)},
		{ID: "today", Name: "today", Deadline: now.Add(6 * time.Hour)},
		{ID: "tomorrow", Name: "tomorrow", Deadline: due(1)},
		{ID: "thisweek", Name: "thisweek", Deadline: due(5)},
		{ID: "thismonth", Name: "thismonth", Deadline: due(20)},
		{ID: "faraway", Name: "faraway", Deadline: due(60)},
		{ID: "done", Name: "done", Deadline: due(1), Done: true},
	}

	h := BuildHorizons(pending, model.MoodNone, now)

	daily := ids(h.Daily)
	if len(daily) != 3 {
		t.Fatalf("daily = %v, want 3 entries", daily)
	}
	if ids(h.Weekly)[0] != "thisweek" || len(h.Weekly) != 1 {
		t.Errorf("weekly = %v", ids(h.Weekly))
	}
	if ids(h.Monthly)[0] != "thismonth" || len(h.Monthly) != 1 {
		t.Errorf("monthly = %v", ids(h.Monthly))
	}

	// Buckets are exclusive and bounded.
	for _, id := range daily {
		if id == "thisweek" || id == "thismonth" || id == "faraway" || id == "done" {
			t.Errorf("daily contains %s", id)
		}
	}
}

func TestBuildHorizonsDailyOrder(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	sameDeadline := now.Add(4 * time.Hour)
	pending := []model.Task{
		// Same deadline: lower estimate means a higher tier, so "short"
		// must sort before "long".
		{ID: "long", Name: "long", Deadline: sameDeadline, EstimateMinutes: 200},
		{ID: "short", Name: "short", Deadline: sameDeadline, EstimateMinutes: 5},
		{ID: "early", Name: "early", Deadline: now.Add(time.Hour), EstimateMinutes: 200},
	}

	h := BuildHorizons(pending, model.MoodNone, now)
	got := ids(h.Daily)
	want := []string{"early", "short", "long"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("daily order = %v, want %v", got, want)
		}
	}
}

func TestBuildHorizonsMoodMatchBreaksTies(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	deadline := now.Add(4 * time.Hour)

	pending := []model.Task{
		{ID: "other", Name: "other", Deadline: deadline, EstimateMinutes: 10, Mood: model.MoodEnergetic},
		{ID: "match", Name: "match", Deadline: deadline, EstimateMinutes: 10, Mood: model.MoodFocused},
	}

	h := BuildHorizons(pending, model.MoodFocused, now)
	if got := ids(h.Daily); got[0] != "match" {
		t.Errorf("daily order = %v, want the mood match first", got)
	}
	if !h.Daily[0].MoodMatch {
		t.Error("leading entry not flagged as mood match")
	}
}

func TestRelativeDayLabels(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	due := func(days int) time.Time { return now.AddDate(0, 0, days) }

	tests := []struct {
		deadline time.Time
		want     string
	}{
		{now.Add(2 * time.Hour), "due today"},
		{due(1), "due tomorrow"},
		{due(4), "due in 4 days"},
		{due(-1), "overdue since yesterday"},
		{due(-3), "overdue by 3 days"},
	}
	for _, tt := range tests {
		task := model.Task{Name: "t", Deadline: tt.deadline}
		if got := relativeDayLabel(task, now); got != tt.want {
			t.Errorf("label for %v = %q, want %q", tt.deadline, got, tt.want)
		}
	}
}

func ids(entries []HorizonEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Task.ID)
	}
	return out
}
