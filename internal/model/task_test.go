package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:              "task-1",
		Name:            "Water the basil",
		Deadline:        now.Add(24 * time.Hour),
		EstimateMinutes: 15,
		Mood:            MoodRelaxed,
		Difficulty:      20,
		CreatedAt:       now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiredFields(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	base := Task{
		ID:        "task-1",
		Name:      "Named",
		Deadline:  now.Add(time.Hour),
		CreatedAt: now,
	}

	missingName := base
	missingName.Name = "   "
	if err := missingName.Validate(); !errors.Is(err, ErrTaskNameRequired) {
		t.Fatalf("expected ErrTaskNameRequired, got %v", err)
	}

	missingDeadline := base
	missingDeadline.Deadline = time.Time{}
	if err := missingDeadline.Validate(); !errors.Is(err, ErrTaskDeadlineRequired) {
		t.Fatalf("expected ErrTaskDeadlineRequired, got %v", err)
	}
}

func TestTaskValidateDoneRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Name:      "Done task",
		Deadline:  now.Add(time.Hour),
		Done:      true,
		CreatedAt: now,
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error, got nil")
	}

	task.Done = false
	task.CompletedAt = &now
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for completed_at on pending task, got nil")
	}
}

func TestTaskValidateBounds(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:         "task-1",
		Name:       "Out of range",
		Deadline:   now.Add(time.Hour),
		Difficulty: 120,
		CreatedAt:  now,
	}
	if err := task.Validate(); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}

	task.Difficulty = 50
	task.Priority = -1
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}

	task.Priority = 0
	task.Mood = Mood("Giddy")
	if err := task.Validate(); !errors.Is(err, ErrInvalidMood) {
		t.Fatalf("expected ErrInvalidMood, got %v", err)
	}
}

func TestParseMood(t *testing.T) {
	got, err := ParseMood("focused")
	if err != nil {
		t.Fatalf("parse mood: %v", err)
	}
	if got != MoodFocused {
		t.Fatalf("ParseMood(focused)=%q, want %q", got, MoodFocused)
	}

	if got, err := ParseMood("  "); err != nil || got != MoodNone {
		t.Fatalf("ParseMood(blank)=%q,%v, want none,nil", got, err)
	}

	if _, err := ParseMood("grumpy"); !errors.Is(err, ErrInvalidMood) {
		t.Fatalf("expected ErrInvalidMood, got %v", err)
	}
}
