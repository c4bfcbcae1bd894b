package engine

import (
	"strings"
	"time"

	"github.com/verdantapp/sprout/internal/model"
)

// habitMinCompletions is the completed-task threshold below which no
// pattern is inferred.
const habitMinCompletions = 5

type timeBucket int

const (
	bucketMorning timeBucket = iota
	bucketAfternoon
	bucketEvening
	bucketNight
	bucketCount
)

var bucketKeywords = [bucketCount]string{"morning", "afternoon", "evening", "night"}

var bucketPhrases = [bucketCount]string{
	"Morning coding session",
	"Afternoon focus block",
	"Evening wind-down",
	"Night owl session",
}

func bucketForHour(hour int) timeBucket {
	switch {
	case hour >= 5 && hour < 12:
		return bucketMorning
	case hour >= 12 && hour < 17:
		return bucketAfternoon
	case hour >= 17 && hour < 22:
		return bucketEvening
	default:
		return bucketNight
	}
}

// DetectHabit inspects the completed-task history and proposes a habit
// when a dominant completion time (and optionally mood) emerges. It
// returns false when fewer than five tasks are completed or when a
// sufficiently similar habit already exists.
//
// Tie-break direction is load-bearing: both maxima scan from the last
// enumerated candidate backwards with a strict comparison, so the
// later-enumerated bucket or mood wins a tied count.
func DetectHabit(completed []model.Task, existing []model.Habit, now time.Time) (model.Habit, bool) {
	if len(completed) < habitMinCompletions {
		return model.Habit{}, false
	}

	var bucketCounts [bucketCount]int
	moodCounts := make(map[model.Mood]int)
	for _, t := range completed {
		if t.CompletedAt == nil {
			continue
		}
		bucketCounts[bucketForHour(t.CompletedAt.Hour())]++
		if t.Mood.IsSet() {
			moodCounts[t.Mood]++
		}
	}

	best := bucketNight
	for b := bucketNight - 1; b >= bucketMorning; b-- {
		if bucketCounts[b] > bucketCounts[best] {
			best = b
		}
	}
	if bucketCounts[best] == 0 {
		return model.Habit{}, false
	}

	winningMood := model.MoodNone
	moods := model.AllMoods()
	for i := len(moods) - 1; i >= 0; i-- {
		if moodCounts[moods[i]] > moodCounts[winningMood] {
			winningMood = moods[i]
		}
	}

	name := bucketPhrases[best]
	if winningMood.IsSet() {
		name += " when " + strings.ToLower(string(winningMood))
	}

	if habitExists(existing, bucketKeywords[best], winningMood) {
		return model.Habit{}, false
	}

	return model.Habit{
		Name:      name,
		Frequency: model.FrequencyDaily,
		Streak:    0,
		Mood:      winningMood,
		CreatedAt: now,
	}, true
}

// habitExists matches on name content, not entity equality: a stored
// habit whose name already mentions the winning time bucket (and mood,
// when one was found) suppresses a duplicate.
func habitExists(existing []model.Habit, bucketKeyword string, mood model.Mood) bool {
	moodKeyword := strings.ToLower(string(mood))
	for _, h := range existing {
		name := strings.ToLower(h.Name)
		if !strings.Contains(name, bucketKeyword) {
			continue
		}
		if moodKeyword == "" || strings.Contains(name, moodKeyword) {
			return true
		}
	}
	return false
}

// AdvanceStreak runs the daily streak pass for one habit and reports
// whether it changed. The pass is idempotent for a given day:
// a same-day LastCompleted leaves the habit untouched, exactly one
// elapsed calendar day advances the date and increments the streak, and
// a longer gap resets the streak leaving the date alone.
func AdvanceStreak(h *model.Habit, today time.Time) bool {
	if h.LastCompleted == nil {
		return false
	}
	days := calendarDaysBetween(*h.LastCompleted, today)
	switch {
	case days <= 0:
		return false
	case days == 1:
		next := h.LastCompleted.AddDate(0, 0, 1)
		h.LastCompleted = &next
		h.Streak++
		return true
	default:
		if h.Streak == 0 {
			return false
		}
		h.Streak = 0
		return true
	}
}

func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
