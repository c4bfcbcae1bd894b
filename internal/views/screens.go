package views

import (
	"fmt"
	"strings"
)

type GardenPanelData struct {
	TreeArt        string
	Level          int
	Points         int
	NextThreshold  int
	ProgressView   string
	HeightMeters   float64
	Leaves         int
	Health         int
	Beauty         int
	CompletedTasks int
	LeafStyle      string
	BarkTexture    string
	Lighting       string
	SpecialEffects []string
	Decorations    []string
}

type TaskItemData struct {
	ID       string
	Name     string
	Tier     string
	Priority int
	Deadline string
	Mood     string
	Done     bool
	Subtasks string
}

type TasksPanelData struct {
	Mood         string
	QuickAddView string
	Items        []TaskItemData
	SelectedID   string
}

type ScheduleEntryData struct {
	Name      string
	Tier      string
	Label     string
	MoodMatch bool
}

type SchedulePanelData struct {
	Daily   []ScheduleEntryData
	Weekly  []ScheduleEntryData
	Monthly []ScheduleEntryData
}

type HabitItemData struct {
	Name          string
	Frequency     string
	Streak        int
	LastCompleted string
}

type HabitsPanelData struct {
	Items  []HabitItemData
	Cursor int
}

type InventoryItemData struct {
	ID     string
	Name   string
	Detail string
	Locked bool
	Used   bool
}

type InventoryPanelData struct {
	Tools   []InventoryItemData
	Rewards []InventoryItemData
	Cursor  int
	Section string
}

type PlanPanelData struct {
	Active      bool
	GoalView    string
	SpinnerView string
	Waiting     bool
	Drafts      []string
	Err         string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderGardenPanel(data GardenPanelData) string {
	var b strings.Builder
	b.WriteString("garden:\n")
	b.WriteString(data.TreeArt + "\n")
	b.WriteString(fmt.Sprintf("level: %d | points: %d/%d %s\n", data.Level, data.Points, data.NextThreshold, data.ProgressView))
	b.WriteString(fmt.Sprintf("height: %.1fm | leaves: %d | health: %d | beauty: %d\n",
		data.HeightMeters, data.Leaves, data.Health, data.Beauty))
	b.WriteString(fmt.Sprintf("tasks completed this month: %d\n", data.CompletedTasks))
	b.WriteString(fmt.Sprintf("style: %s leaves, %s bark", data.LeafStyle, data.BarkTexture))
	if data.Lighting != "" {
		b.WriteString(", " + data.Lighting)
	}
	b.WriteString("\n")
	if len(data.SpecialEffects) > 0 {
		b.WriteString("effects: " + strings.Join(data.SpecialEffects, ", ") + "\n")
	}
	if len(data.Decorations) > 0 {
		b.WriteString("decorations: " + strings.Join(data.Decorations, ", ") + "\n")
	}
	return strings.TrimSpace(b.String())
}

// RenderTreeArt sketches the tree, taller and fuller as the level and
// leaf count grow.
func RenderTreeArt(level, leaves, health int) string {
	crownRows := 1 + level/4
	if crownRows > 4 {
		crownRows = 4
	}
	crownWidth := 3 + leaves/20
	if crownWidth > 9 {
		crownWidth = 9
	}
	leafRune := "*"
	if health < 40 {
		leafRune = "."
	}

	var b strings.Builder
	for row := 0; row < crownRows; row++ {
		width := crownWidth - (crownRows - 1 - row)
		if width < 1 {
			width = 1
		}
		pad := (crownWidth - width) / 2
		b.WriteString(strings.Repeat(" ", pad+2))
		b.WriteString(strings.Repeat(leafRune, width))
		b.WriteString("\n")
	}
	trunkRows := 1 + level/7
	for row := 0; row < trunkRows; row++ {
		b.WriteString(strings.Repeat(" ", crownWidth/2+1))
		b.WriteString("||\n")
	}
	b.WriteString(strings.Repeat("_", crownWidth+4))
	return b.String()
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Mood != "" {
		b.WriteString(fmt.Sprintf("mood: %s\n", data.Mood))
	} else {
		b.WriteString("mood: (not set)\n")
	}
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString("actions: [enter]add [j/k]move [c]complete [e/m/H]rate [x]delete\n")
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		check := "[ ]"
		if item.Done {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (p%d, %s)", cursor, check, tierBadge(item.Tier), item.Name, item.Priority, item.Deadline))
		if item.Mood != "" {
			b.WriteString(" ~" + strings.ToLower(item.Mood))
		}
		if item.Subtasks != "" {
			b.WriteString(" " + item.Subtasks)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	b.WriteString("schedule:\n")
	renderHorizonSection(&b, "today", data.Daily)
	renderHorizonSection(&b, "this week", data.Weekly)
	renderHorizonSection(&b, "this month", data.Monthly)
	return strings.TrimSpace(b.String())
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString("habits:\n")
	b.WriteString("actions: [j/k]move [enter]mark done today\n")
	if len(data.Items) == 0 {
		b.WriteString("(no habits detected yet; keep completing tasks)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s] streak: %d", cursor, item.Name, item.Frequency, item.Streak))
		if item.LastCompleted != "" {
			b.WriteString(" | last: " + item.LastCompleted)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderInventoryPanel(data InventoryPanelData) string {
	var b strings.Builder
	b.WriteString("inventory:\n")
	b.WriteString("actions: [tab]section [j/k]move [enter]use\n")
	renderInventorySection(&b, "tools", data.Tools, data.Section == "tools", data.Cursor)
	renderInventorySection(&b, "rewards", data.Rewards, data.Section == "rewards", data.Cursor)
	return strings.TrimSpace(b.String())
}

func RenderPlanPanel(data PlanPanelData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nplan:\n")
	if data.Waiting {
		b.WriteString("assistant " + data.SpinnerView + " thinking...\n")
	} else {
		b.WriteString("goal: " + data.GoalView + "\n")
		b.WriteString("keys: [enter]ask [esc]close [a]accept all\n")
	}
	if data.Err != "" {
		b.WriteString("error: " + data.Err + "\n")
	}
	for i, draft := range data.Drafts {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, draft))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderHorizonSection(b *strings.Builder, title string, entries []ScheduleEntryData) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(entries) == 0 {
		b.WriteString("  (nothing due)\n")
		return
	}
	for _, entry := range entries {
		marker := " "
		if entry.MoodMatch {
			marker = "~"
		}
		b.WriteString(fmt.Sprintf("%s %s %s (%s)\n", marker, tierBadge(entry.Tier), entry.Name, entry.Label))
	}
}

func renderInventorySection(b *strings.Builder, title string, items []InventoryItemData, active bool, cursor int) {
	marker := " "
	if active {
		marker = "*"
	}
	b.WriteString(fmt.Sprintf("\n%s %s:\n", marker, title))
	if len(items) == 0 {
		b.WriteString("  (empty)\n")
		return
	}
	for i, item := range items {
		prefix := " "
		if active && i == cursor {
			prefix = ">"
		}
		state := ""
		if item.Used {
			state = " (used)"
		} else if item.Locked {
			state = " (locked)"
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s\n", prefix, item.Name, item.Detail, state))
	}
}

func tierBadge(tier string) string {
	switch tier {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
