package engine

import (
	"time"

	"github.com/verdantapp/sprout/internal/model"
	"github.com/verdantapp/sprout/internal/storage"
)

func taskToRecord(t model.Task) storage.Task {
	return storage.Task{
		ID:              t.ID,
		Name:            t.Name,
		Notes:           t.Notes,
		Deadline:        t.Deadline,
		EstimateMinutes: t.EstimateMinutes,
		ActualMinutes:   t.ActualMinutes,
		Done:            t.Done,
		CompletedAt:     t.CompletedAt,
		Priority:        t.Priority,
		Mood:            string(t.Mood),
		Difficulty:      t.Difficulty,
		DifficultyRated: t.DifficultyRated,
		ProjectID:       t.ProjectID,
		CreatedAt:       t.CreatedAt,
	}
}

func taskFromRecord(rec storage.Task, subtasks []storage.Subtask) model.Task {
	out := model.Task{
		ID:              rec.ID,
		Name:            rec.Name,
		Notes:           rec.Notes,
		Deadline:        rec.Deadline,
		EstimateMinutes: rec.EstimateMinutes,
		ActualMinutes:   rec.ActualMinutes,
		Done:            rec.Done,
		CompletedAt:     rec.CompletedAt,
		Priority:        rec.Priority,
		Mood:            storedMood(rec.Mood),
		Difficulty:      rec.Difficulty,
		DifficultyRated: rec.DifficultyRated,
		ProjectID:       rec.ProjectID,
		CreatedAt:       rec.CreatedAt,
	}
	for _, st := range subtasks {
		out.Subtasks = append(out.Subtasks, model.Subtask{
			ID:          st.ID,
			Name:        st.Name,
			Done:        st.Done,
			CompletedAt: st.CompletedAt,
		})
	}
	return out
}

// storedMood degrades an unparseable stored mood to none instead of
// propagating corruption.
func storedMood(raw string) model.Mood {
	m := model.Mood(raw)
	if !m.IsValid() {
		return model.MoodNone
	}
	return m
}

func projectToRecord(p model.Project) storage.Project {
	return storage.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Deadline:    p.Deadline,
		Done:        p.Done,
		CompletedAt: p.CompletedAt,
		CreatedAt:   p.CreatedAt,
	}
}

func projectFromRecord(rec storage.Project) model.Project {
	return model.Project{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Deadline:    rec.Deadline,
		Done:        rec.Done,
		CompletedAt: rec.CompletedAt,
		CreatedAt:   rec.CreatedAt,
	}
}

func habitToRecord(h model.Habit) storage.Habit {
	return storage.Habit{
		ID:            h.ID,
		Name:          h.Name,
		Frequency:     string(h.Frequency),
		Streak:        h.Streak,
		LastCompleted: h.LastCompleted,
		Mood:          string(h.Mood),
		CreatedAt:     h.CreatedAt,
	}
}

func habitFromRecord(rec storage.Habit) model.Habit {
	return model.Habit{
		ID:            rec.ID,
		Name:          rec.Name,
		Frequency:     model.Frequency(rec.Frequency),
		Streak:        rec.Streak,
		LastCompleted: rec.LastCompleted,
		Mood:          storedMood(rec.Mood),
		CreatedAt:     rec.CreatedAt,
	}
}

func toolToRecord(t model.Tool, createdAt time.Time) storage.Tool {
	return storage.Tool{
		ID:          t.ID,
		Name:        t.Name,
		Type:        string(t.Type),
		UnlockLevel: t.UnlockLevel,
		HeightDelta: t.Effect.HeightDelta,
		LeafDelta:   t.Effect.LeafDelta,
		HealthDelta: t.Effect.HealthDelta,
		BeautyDelta: t.Effect.BeautyDelta,
		Style:       string(t.Effect.Style),
		Used:        t.Used,
		CreatedAt:   createdAt,
	}
}

func toolFromRecord(rec storage.Tool) model.Tool {
	return model.Tool{
		ID:          rec.ID,
		Name:        rec.Name,
		Type:        model.ToolType(rec.Type),
		UnlockLevel: rec.UnlockLevel,
		Effect: model.Effect{
			HeightDelta: rec.HeightDelta,
			LeafDelta:   rec.LeafDelta,
			HealthDelta: rec.HealthDelta,
			BeautyDelta: rec.BeautyDelta,
			Style:       model.StyleTag(rec.Style),
		},
		Used: rec.Used,
	}
}

func rewardToRecord(r model.Reward, createdAt time.Time) storage.Reward {
	return storage.Reward{
		ID:          r.ID,
		Name:        r.Name,
		Kind:        string(r.Kind),
		Rarity:      string(r.Rarity),
		HeightDelta: r.Effect.HeightDelta,
		LeafDelta:   r.Effect.LeafDelta,
		HealthDelta: r.Effect.HealthDelta,
		BeautyDelta: r.Effect.BeautyDelta,
		Style:       string(r.Effect.Style),
		Used:        r.Used,
		CreatedAt:   createdAt,
	}
}

func rewardFromRecord(rec storage.Reward) model.Reward {
	return model.Reward{
		ID:     rec.ID,
		Name:   rec.Name,
		Kind:   model.RewardKind(rec.Kind),
		Rarity: model.Rarity(rec.Rarity),
		Effect: model.Effect{
			HeightDelta: rec.HeightDelta,
			LeafDelta:   rec.LeafDelta,
			HealthDelta: rec.HealthDelta,
			BeautyDelta: rec.BeautyDelta,
			Style:       model.StyleTag(rec.Style),
		},
		Used: rec.Used,
	}
}

func treeToRecord(t model.TreeState) storage.TreeState {
	return storage.TreeState{
		HeightMeters:   t.HeightMeters,
		Leaves:         t.Leaves,
		Health:         t.Health,
		Beauty:         t.Beauty,
		Decorations:    append([]string(nil), t.Decorations...),
		CompletedTasks: t.CompletedTasks,
		Points:         t.Points,
		Level:          t.Level,
		LeafStyle:      string(t.LeafStyle),
		BarkTexture:    string(t.BarkTexture),
		Lighting:       string(t.Lighting),
		SpecialEffects: append([]string(nil), t.SpecialEffects...),
		LastReset:      t.LastReset,
	}
}

func treeFromRecord(rec storage.TreeState) model.TreeState {
	return model.TreeState{
		HeightMeters:   rec.HeightMeters,
		Leaves:         rec.Leaves,
		Health:         rec.Health,
		Beauty:         rec.Beauty,
		Decorations:    append([]string(nil), rec.Decorations...),
		CompletedTasks: rec.CompletedTasks,
		Points:         rec.Points,
		Level:          rec.Level,
		LeafStyle:      model.StyleTag(rec.LeafStyle),
		BarkTexture:    model.StyleTag(rec.BarkTexture),
		Lighting:       model.StyleTag(rec.Lighting),
		SpecialEffects: append([]string(nil), rec.SpecialEffects...),
		LastReset:      rec.LastReset,
	}
}
