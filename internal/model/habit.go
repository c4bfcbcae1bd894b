package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidFrequency = errors.New("model: invalid habit frequency")

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, input)
	}
	return f, nil
}

// Habit is an inferred recurring completion pattern. The streak counter
// advances only when LastCompleted moves forward by exactly one calendar
// day; a longer gap resets it.
type Habit struct {
	ID            string
	Name          string
	Frequency     Frequency
	Streak        int
	LastCompleted *time.Time
	Mood          Mood
	CreatedAt     time.Time
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("model: habit name is required")
	}
	if !h.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, h.Frequency)
	}
	if h.Streak < 0 {
		return errors.New("model: habit streak must not be negative")
	}
	if h.Mood != MoodNone && !h.Mood.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMood, h.Mood)
	}
	return nil
}
