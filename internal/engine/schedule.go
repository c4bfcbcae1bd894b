package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/verdantapp/sprout/internal/model"
)

// HorizonEntry is one pending task rendered for a schedule bucket.
type HorizonEntry struct {
	Task      model.Task
	Tier      Tier
	MoodMatch bool
	Label     string
}

// Horizons partitions pending tasks into daily, weekly and monthly
// buckets. The buckets are exclusive: weekly excludes daily, monthly
// excludes both. Tasks due beyond thirty days are left out entirely.
type Horizons struct {
	Daily   []HorizonEntry
	Weekly  []HorizonEntry
	Monthly []HorizonEntry
}

// BuildHorizons is a pure function of the pending set and now; it holds
// no state and can be recomputed on demand.
func BuildHorizons(pending []model.Task, current model.Mood, now time.Time) Horizons {
	var out Horizons
	for _, t := range pending {
		if t.Done {
			continue
		}
		entry := HorizonEntry{
			Task:      t,
			Tier:      TierFor(PriorityScore(t, current, now)),
			MoodMatch: t.Mood.IsSet() && t.Mood == current,
			Label:     relativeDayLabel(t, now),
		}
		days := calendarDaysBetween(now, t.Deadline)
		switch {
		case days <= 1:
			out.Daily = append(out.Daily, entry)
		case days <= 7:
			out.Weekly = append(out.Weekly, entry)
		case days <= 30:
			out.Monthly = append(out.Monthly, entry)
		}
	}

	sortDaily(out.Daily)
	sortByDate(out.Weekly)
	sortByDate(out.Monthly)
	return out
}

// sortDaily orders by deadline, then tier (high before medium before
// low), then current-mood match first.
func sortDaily(entries []HorizonEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Task.Deadline.Equal(b.Task.Deadline) {
			return a.Task.Deadline.Before(b.Task.Deadline)
		}
		if a.Tier != b.Tier {
			return tierRank(a.Tier) > tierRank(b.Tier)
		}
		return a.MoodMatch && !b.MoodMatch
	})
}

func sortByDate(entries []HorizonEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Task.Deadline.Before(entries[j].Task.Deadline)
	})
}

func tierRank(t Tier) int {
	switch t {
	case TierHigh:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

func relativeDayLabel(t model.Task, now time.Time) string {
	days := calendarDaysBetween(now, t.Deadline)
	switch {
	case days < 0:
		if days == -1 {
			return "overdue since yesterday"
		}
		return fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}
