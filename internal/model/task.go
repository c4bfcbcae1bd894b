package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTaskNameRequired     = errors.New("model: task name is required")
	ErrTaskDeadlineRequired = errors.New("model: task deadline is required")
	ErrInvalidDifficulty    = errors.New("model: difficulty must be in [0,100]")
	ErrInvalidPriority      = errors.New("model: priority must be in [0,100]")
)

// Task is a unit of work. Priority and Difficulty are derived scores in
// [0,100]; Priority is only meaningful while the task is pending and is
// recomputed on every pending-set mutation.
type Task struct {
	ID              string
	Name            string
	Notes           string
	Deadline        time.Time
	EstimateMinutes int
	ActualMinutes   *int
	Done            bool
	CompletedAt     *time.Time
	Priority        int
	Mood            Mood
	Difficulty      int
	DifficultyRated bool
	Subtasks        []Subtask
	ProjectID       *string
	CreatedAt       time.Time
}

// Subtask is owned exclusively by its parent task and is removed with it.
type Subtask struct {
	ID          string
	Name        string
	Done        bool
	CompletedAt *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrTaskNameRequired
	}
	if t.Deadline.IsZero() {
		return ErrTaskDeadlineRequired
	}
	if t.EstimateMinutes < 0 {
		return errors.New("model: estimate_minutes must not be negative")
	}
	if t.Mood != MoodNone && !t.Mood.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMood, t.Mood)
	}
	if t.Difficulty < 0 || t.Difficulty > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, t.Difficulty)
	}
	if t.Priority < 0 || t.Priority > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Done && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is done")
	}
	if !t.Done && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not done")
	}
	for _, st := range t.Subtasks {
		if err := st.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Subtask) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: subtask id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("model: subtask name is required")
	}
	if s.Done && s.CompletedAt == nil {
		return errors.New("model: completed_at is required when subtask is done")
	}
	return nil
}
