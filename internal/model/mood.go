package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMood = errors.New("model: invalid mood")

// Mood is the user-selectable affinity tag that influences task priority
// and scheduling suggestions.
type Mood string

const (
	MoodCreative  Mood = "Creative"
	MoodFocused   Mood = "Focused"
	MoodRelaxed   Mood = "Relaxed"
	MoodEnergetic Mood = "Energetic"
	MoodTired     Mood = "Tired"
)

// MoodNone marks a task without a mood affinity.
const MoodNone Mood = ""

func (m Mood) IsValid() bool {
	switch m {
	case MoodCreative, MoodFocused, MoodRelaxed, MoodEnergetic, MoodTired:
		return true
	default:
		return false
	}
}

func (m Mood) IsSet() bool {
	return m != MoodNone
}

func ParseMood(input string) (Mood, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return MoodNone, nil
	}
	m := Mood(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
	if !m.IsValid() {
		return MoodNone, fmt.Errorf("%w: %q", ErrInvalidMood, input)
	}
	return m, nil
}

func AllMoods() []Mood {
	return []Mood{MoodCreative, MoodFocused, MoodRelaxed, MoodEnergetic, MoodTired}
}
