package update

import (
	"fmt"
	"strings"

	"github.com/verdantapp/sprout/internal/engine"
	"github.com/verdantapp/sprout/internal/model"
	"github.com/verdantapp/sprout/internal/views"
)

func (m Model) gardenPanelData() views.GardenPanelData {
	threshold := engine.LevelThreshold(m.Tree.Level)
	ratio := 0.0
	if threshold > 0 {
		ratio = float64(m.Tree.Points) / float64(threshold)
		if ratio > 1 {
			ratio = 1
		}
	}
	return views.GardenPanelData{
		TreeArt:        views.RenderTreeArt(m.Tree.Level, m.Tree.Leaves, m.Tree.Health),
		Level:          m.Tree.Level,
		Points:         m.Tree.Points,
		NextThreshold:  threshold,
		ProgressView:   m.levelProgress.ViewAs(ratio),
		HeightMeters:   m.Tree.HeightMeters,
		Leaves:         m.Tree.Leaves,
		Health:         m.Tree.Health,
		Beauty:         m.Tree.Beauty,
		CompletedTasks: m.Tree.CompletedTasks,
		LeafStyle:      string(m.Tree.LeafStyle),
		BarkTexture:    string(m.Tree.BarkTexture),
		Lighting:       string(m.Tree.Lighting),
		SpecialEffects: m.Tree.SpecialEffects,
		Decorations:    m.Tree.Decorations,
	}
}

func (m Model) tasksPanelData() views.TasksPanelData {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		items = append(items, views.TaskItemData{
			ID:       t.ID,
			Name:     t.Name,
			Tier:     string(engine.TierFor(t.Priority)),
			Priority: t.Priority,
			Deadline: formatDeadline(t.Deadline),
			Mood:     string(t.Mood),
			Done:     t.Done,
			Subtasks: subtaskSummary(t.Subtasks),
		})
	}
	quickAdd := ""
	if m.quickAddMode {
		quickAdd = "new: " + m.quickAddInput.View()
	}
	return views.TasksPanelData{
		Mood:         string(m.Mood),
		QuickAddView: quickAdd,
		Items:        items,
		SelectedID:   m.SelectedTaskID,
	}
}

func (m Model) schedulePanelData() views.SchedulePanelData {
	return views.SchedulePanelData{
		Daily:   scheduleEntries(m.Horizons.Daily),
		Weekly:  scheduleEntries(m.Horizons.Weekly),
		Monthly: scheduleEntries(m.Horizons.Monthly),
	}
}

func scheduleEntries(entries []engine.HorizonEntry) []views.ScheduleEntryData {
	out := make([]views.ScheduleEntryData, 0, len(entries))
	for _, entry := range entries {
		out = append(out, views.ScheduleEntryData{
			Name:      entry.Task.Name,
			Tier:      string(entry.Tier),
			Label:     entry.Label,
			MoodMatch: entry.MoodMatch,
		})
	}
	return out
}

func (m Model) habitsPanelData() views.HabitsPanelData {
	items := make([]views.HabitItemData, 0, len(m.Habits))
	for _, h := range m.Habits {
		last := ""
		if h.LastCompleted != nil {
			last = h.LastCompleted.Format("Jan 2")
		}
		items = append(items, views.HabitItemData{
			Name:          h.Name,
			Frequency:     string(h.Frequency),
			Streak:        h.Streak,
			LastCompleted: last,
		})
	}
	return views.HabitsPanelData{Items: items, Cursor: m.HabitCursor}
}

func (m Model) inventoryPanelData() views.InventoryPanelData {
	tools := make([]views.InventoryItemData, 0, len(m.Tools))
	for _, t := range m.Tools {
		tools = append(tools, views.InventoryItemData{
			ID:     t.ID,
			Name:   t.Name,
			Detail: fmt.Sprintf("(%s, lv%d)", t.Type, t.UnlockLevel),
			Locked: t.UnlockLevel > m.Tree.Level,
			Used:   t.Used,
		})
	}
	rewards := make([]views.InventoryItemData, 0, len(m.Rewards))
	for _, r := range m.Rewards {
		rewards = append(rewards, views.InventoryItemData{
			ID:     r.ID,
			Name:   r.Name,
			Detail: fmt.Sprintf("(%s %s)", strings.ToLower(string(r.Rarity)), r.Kind),
			Used:   r.Used,
		})
	}
	return views.InventoryPanelData{
		Tools:   tools,
		Rewards: rewards,
		Cursor:  m.InvCursor,
		Section: string(m.InvSection),
	}
}

func (m Model) planPanelData() views.PlanPanelData {
	drafts := make([]string, 0, len(m.Plan.Drafts))
	for _, d := range m.Plan.Drafts {
		line := d.Name
		if d.Description != "" {
			line += " - " + d.Description
		}
		if len(d.Subtasks) > 0 {
			line += fmt.Sprintf(" (%d subtasks)", len(d.Subtasks))
		}
		drafts = append(drafts, line)
	}
	return views.PlanPanelData{
		Active:      m.Plan.Active,
		GoalView:    m.planGoalArea.View(),
		SpinnerView: m.planSpinner.View(),
		Waiting:     m.Plan.Waiting,
		Drafts:      drafts,
		Err:         m.Plan.Err,
	}
}

const helpMarkdown = `# sprout

Complete tasks to grow your tree. Harder tasks award more points and
draw rarer rewards. Moods tune the ranking, habits emerge from your
completion rhythm, and every month the tree is archived and replanted.

## commands

` + "`/add <name> due:<when> est:<minutes> mood:<mood>`" + `
` + "`/done <task>` `/mood <mood>` `/rate <task> easy|medium|hard`" + `
` + "`/use <tool or reward>` `/plan <goal>` `/show <view>`" + `
`

func (m Model) helpPanelData() views.HelpPanelData {
	bindings := []string{
		"1-5: switch view",
		"/: command palette",
		"p: plan with the assistant",
		"?: toggle help",
		"q: quit",
	}
	switch m.CurrentView {
	case ViewTasks:
		bindings = append(bindings,
			"enter: quick add",
			"j/k: move",
			"c: complete selected",
			"e/m/H: rate easy/medium/hard",
			"x: delete selected",
		)
	case ViewGarden:
		bindings = append(bindings, "R: replant the tree (archives this epoch)")
	case ViewHabits:
		bindings = append(bindings, "j/k: move", "enter: mark habit done today")
	case ViewInventory:
		bindings = append(bindings, "tab: switch section", "j/k: move", "enter: use item")
	}
	return views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    bindings,
		HelpView:    m.helpViewport.View(),
	}
}

func subtaskSummary(subtasks []model.Subtask) string {
	if len(subtasks) == 0 {
		return ""
	}
	done := 0
	for _, st := range subtasks {
		if st.Done {
			done++
		}
	}
	return fmt.Sprintf("[%d/%d]", done, len(subtasks))
}

func moodLabel(mood model.Mood) string {
	if !mood.IsSet() {
		return "mood unset"
	}
	return "feeling " + strings.ToLower(string(mood))
}
