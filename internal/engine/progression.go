package engine

import (
	"math"
	"time"

	"github.com/verdantapp/sprout/internal/model"
)

// levelGrowthFactor drives the exponential threshold curve:
// threshold(L) = floor(100 * 1.4^(L-1)).
const levelGrowthFactor = 1.4

// LevelThreshold returns the cumulative-point threshold to leave the
// given level. Level 1 costs 100 points, each further level 1.4x more.
func LevelThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	// Pow(1.4, 2) lands a hair under 1.96, so nudge above the exact
	// value before flooring.
	return int(math.Floor(100*math.Pow(levelGrowthFactor, float64(level-1)) + 1e-9))
}

// AddPoints accrues points on the tree and advances the level while the
// cumulative total clears the current level's threshold, capped at
// TreeMaxLevel. Each level gained grows the tree: height and leaves by
// min(10, newLevel) growth units (a tenth of a meter each for height)
// and health by a flat 5.
func AddPoints(tree *model.TreeState, points int) (levelsGained int) {
	if points < 0 {
		return 0
	}
	tree.Points += points
	for tree.Level < model.TreeMaxLevel && tree.Points >= LevelThreshold(tree.Level) {
		tree.Level++
		gain := tree.Level
		if gain > 10 {
			gain = 10
		}
		tree.ApplyEffect(model.Effect{
			HeightDelta: float64(gain) / 10,
			LeafDelta:   gain,
			HealthDelta: 5,
		})
		levelsGained++
	}
	return levelsGained
}

// MonthlyResetDue reports whether the scheduled epoch rollover applies:
// the first calendar day of a month with no reset recorded for that
// month yet. It is evaluated on load and on state change, never by a
// background timer, so it must stay idempotent.
func MonthlyResetDue(tree model.TreeState, now time.Time) bool {
	if now.Day() != 1 {
		return false
	}
	ry, rm, _ := tree.LastReset.Date()
	ny, nm, _ := now.Date()
	return ry != ny || rm != nm
}

// ResetTree snapshots the finished epoch and returns the snapshot plus a
// fresh default state whose epoch starts at now.
func ResetTree(tree model.TreeState, now time.Time) (model.TreeSnapshot, model.TreeState) {
	snapshot := model.TreeSnapshot{TakenAt: now, State: tree}
	return snapshot, model.DefaultTreeState(now)
}
