package model

import "time"

const (
	TreeMaxLevel  = 20
	TreeMaxLeaves = 100
	TreeMaxHealth = 100
	TreeMaxBeauty = 100
)

// TreeState is the numeric growth state behind the garden view. Height
// only grows within a reset epoch; leaves, health and beauty are bounded
// gauges; level is monotonic until the monthly reset archives the epoch.
type TreeState struct {
	HeightMeters   float64
	Leaves         int
	Health         int
	Beauty         int
	Decorations    []string
	CompletedTasks int
	Points         int
	Level          int
	LeafStyle      StyleTag
	BarkTexture    StyleTag
	Lighting       StyleTag
	SpecialEffects []string
	LastReset      time.Time
}

// TreeSnapshot preserves a finished epoch when the tree is reset.
type TreeSnapshot struct {
	TakenAt time.Time
	State   TreeState
}

func DefaultTreeState(now time.Time) TreeState {
	return TreeState{
		HeightMeters: 0.5,
		Leaves:       10,
		Health:       100,
		Beauty:       50,
		Level:        1,
		LeafStyle:    StyleLeafClassic,
		BarkTexture:  StyleBarkSmooth,
		LastReset:    now,
	}
}

// ApplyEffect mutates the gauges by the effect deltas, clamping bounded
// fields and routing the style tag to its matching selector.
func (t *TreeState) ApplyEffect(e Effect) {
	if e.HeightDelta > 0 {
		t.HeightMeters += e.HeightDelta
	}
	t.Leaves = clampGauge(t.Leaves+e.LeafDelta, TreeMaxLeaves)
	t.Health = clampGauge(t.Health+e.HealthDelta, TreeMaxHealth)
	t.Beauty = clampGauge(t.Beauty+e.BeautyDelta, TreeMaxBeauty)
	switch {
	case e.Style == StyleTagNone:
	case e.Style.IsLeafStyle():
		t.LeafStyle = e.Style
	case e.Style.IsBarkTexture():
		t.BarkTexture = e.Style
	case e.Style.IsLighting():
		t.Lighting = e.Style
	case e.Style.IsSpecialEffect():
		t.SpecialEffects = append(t.SpecialEffects, string(e.Style))
	}
}

func clampGauge(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
