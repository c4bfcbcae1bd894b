package engine

import (
	"math"
	"sort"
	"time"

	"github.com/verdantapp/sprout/internal/model"
)

// Tier buckets a priority score for display and schedule ordering.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

const (
	deadlineWeight = 0.4
	timeWeight     = 0.3
	moodWeight     = 0.3
)

// moodAffinity scores how well a task mood fits the current mood.
// Equal moods score 100, the compatible pairs below score 75, any other
// defined pairing scores 25. A task without a mood is neutral at 50.
var moodAffinity = map[model.Mood]model.Mood{
	model.MoodCreative:  model.MoodRelaxed,
	model.MoodRelaxed:   model.MoodCreative,
	model.MoodFocused:   model.MoodEnergetic,
	model.MoodEnergetic: model.MoodFocused,
	model.MoodTired:     model.MoodRelaxed,
}

// PriorityScore computes the urgency score in [0,100] for a pending task.
func PriorityScore(task model.Task, current model.Mood, now time.Time) int {
	score := deadlineWeight*deadlineScore(task.Deadline, now) +
		timeWeight*timeScore(task.EstimateMinutes) +
		moodWeight*moodScore(task.Mood, current)
	return int(math.Floor(score))
}

func deadlineScore(deadline time.Time, now time.Time) float64 {
	hours := deadline.Sub(now).Hours()
	if hours < 0 {
		hours = 0
	}
	return 100 - math.Min(100, hours)
}

// timeScore deliberately mixes units with deadlineScore: estimates are
// minutes while deadlines are hours. The asymmetry is part of the scoring
// contract and tasks estimated over 100 minutes floor at 0.
func timeScore(estimateMinutes int) float64 {
	return 100 - math.Min(100, float64(estimateMinutes))
}

func moodScore(task model.Mood, current model.Mood) float64 {
	if !task.IsSet() {
		return 50
	}
	if !current.IsSet() {
		return 50
	}
	if task == current {
		return 100
	}
	if moodAffinity[task] == current || moodAffinity[current] == task {
		return 75
	}
	return 25
}

// TierFor classifies a score: >66 high, >33 medium, else low.
func TierFor(score int) Tier {
	switch {
	case score > 66:
		return TierHigh
	case score > 33:
		return TierMedium
	default:
		return TierLow
	}
}

// RankPending recomputes priority for every pending task and returns the
// list sorted by score descending. The sort is stable, so equal scores
// keep their original relative order. Completed tasks keep their stale
// scores and are appended after the pending block in original order.
func RankPending(tasks []model.Task, current model.Mood, now time.Time) []model.Task {
	pending := make([]model.Task, 0, len(tasks))
	done := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Done {
			done = append(done, t)
			continue
		}
		t.Priority = PriorityScore(t, current, now)
		pending = append(pending, t)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Priority > pending[j].Priority
	})
	return append(pending, done...)
}
