package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verdantapp/sprout/internal/engine"
	"github.com/verdantapp/sprout/internal/model"
	"github.com/verdantapp/sprout/internal/upkeep"
	"github.com/verdantapp/sprout/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Upkeep != nil {
		m.Upkeep.Start()
		now := m.nowFn()
		if err := m.Upkeep.ScheduleDayRollover(now); err == nil {
			cmds = append(cmds, waitForUpkeepCmd(m.Upkeep.C()))
		}
		m.scheduleHabitNudges(now)
	}
	return tea.Batch(cmds...)
}

// waitForUpkeepCmd blocks on the engine channel and converts each fired
// event into a message; the handler re-subscribes after consuming it.
func waitForUpkeepCmd(ch <-chan upkeep.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return UpkeepDueMsg{Event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.helpViewport.Width = msg.Width - 4
		return m, nil

	case UpkeepDueMsg:
		return m.handleUpkeepDue(msg)

	case PlanResultMsg:
		return m.handlePlanResult(msg)

	case SetStatusMsg:
		m.Status = StatusBar{Text: msg.Text, IsError: msg.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.fail(msg.Err)
		return m, nil

	case spinner.TickMsg:
		if !m.Plan.Waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.planSpinner, cmd = m.planSpinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleUpkeepDue(msg UpkeepDueMsg) (tea.Model, tea.Cmd) {
	if msg.Event.Kind == upkeep.KindHabitNudge {
		m.notifyHabitNudge(msg.Event.HabitID)
		if m.Upkeep != nil {
			return m, waitForUpkeepCmd(m.Upkeep.C())
		}
		return m, nil
	}

	result, err := m.svc.RunUpkeep(m.ctx)
	if err != nil {
		m.fail(err)
	} else {
		m.refreshAll()
		if note := upkeepNote(result); note != "" {
			m.ok(note)
		}
	}
	var cmds []tea.Cmd
	if m.Upkeep != nil {
		now := m.nowFn()
		if err := m.Upkeep.ScheduleDayRollover(now); err != nil {
			m.fail(err)
		}
		m.scheduleHabitNudges(now)
		cmds = append(cmds, waitForUpkeepCmd(m.Upkeep.C()))
	}
	return m, tea.Batch(cmds...)
}

// habitNudgeHour is the local evening hour when unfinished habits get a
// check-in reminder.
const habitNudgeHour = 19

// scheduleHabitNudges arms tonight's reminder for every habit not yet
// completed today. Once the hour has passed nothing is armed; the next
// day rollover schedules the following evening.
func (m *Model) scheduleHabitNudges(now time.Time) {
	if m.Upkeep == nil {
		return
	}
	y, mo, d := now.Date()
	fireAt := time.Date(y, mo, d, habitNudgeHour, 0, 0, 0, now.Location())
	if !fireAt.After(now) {
		return
	}
	for _, habit := range m.Habits {
		if habitDoneOn(habit, now) {
			continue
		}
		if err := m.Upkeep.ScheduleHabitNudge(habit.ID, fireAt); err != nil {
			m.fail(err)
		}
	}
}

// notifyHabitNudge surfaces a due habit in the status bar. A habit
// completed after its nudge was armed stays quiet.
func (m *Model) notifyHabitNudge(habitID string) {
	for _, habit := range m.Habits {
		if habit.ID != habitID {
			continue
		}
		if habitDoneOn(habit, m.nowFn()) {
			return
		}
		m.ok(fmt.Sprintf("habit check-in: %s (streak %d)", habit.Name, habit.Streak))
		return
	}
}

func habitDoneOn(habit model.Habit, day time.Time) bool {
	if habit.LastCompleted == nil {
		return false
	}
	y1, m1, d1 := habit.LastCompleted.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func upkeepNote(result engine.UpkeepResult) string {
	parts := make([]string, 0, 3)
	if result.StreaksAdvanced > 0 {
		parts = append(parts, fmt.Sprintf("%d habit streaks advanced", result.StreaksAdvanced))
	}
	if result.StreaksReset > 0 {
		parts = append(parts, fmt.Sprintf("%d habit streaks reset", result.StreaksReset))
	}
	if result.TreeWasReset {
		parts = append(parts, "a new month began, your tree was archived and replanted")
	}
	return strings.Join(parts, "; ")
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Plan.Active {
		return m.handlePlanKey(msg)
	}
	if m.quickAddMode {
		return m.handleQuickAddKey(msg)
	}

	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Garden:
		m.CurrentView = ViewGarden
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, nil
	case m.Keys.Schedule:
		m.CurrentView = ViewSchedule
		m.refreshHorizons()
		return m, nil
	case m.Keys.Habits:
		m.CurrentView = ViewHabits
		m.refreshHabits()
		return m, nil
	case m.Keys.Inventory:
		m.CurrentView = ViewInventory
		m.refreshInventory()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown))
		}
		return m, nil
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case "p":
		return m.openPlanPanel()
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewGarden:
		return m.handleGardenKey(msg)
	case ViewHabits:
		return m.handleHabitsKey(msg)
	case ViewInventory:
		return m.handleInventoryKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "see you tomorrow, the tree keeps growing\n"
	}

	right := ""
	switch m.CurrentView {
	case ViewTasks:
		right = views.RenderTasksPanel(m.tasksPanelData())
	case ViewSchedule:
		right = views.RenderSchedulePanel(m.schedulePanelData())
	case ViewHabits:
		right = views.RenderHabitsPanel(m.habitsPanelData())
	case ViewInventory:
		right = views.RenderInventoryPanel(m.inventoryPanelData())
	default:
		right = views.RenderTasksPanel(m.tasksPanelData())
	}

	notification := views.RenderPlanPanel(m.planPanelData())
	if m.HelpVisible {
		notification = views.RenderHelpPanel(m.helpPanelData())
	}

	footer := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	if footer == "" {
		footer = "1 garden | 2 tasks | 3 schedule | 4 habits | 5 inventory | / command | p plan | ? help | q quit"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("sprout | %s | %s", strings.ToLower(string(m.CurrentView)), moodLabel(m.Mood)),
		LeftPane:     views.RenderGardenPanel(m.gardenPanelData()),
		RightPane:    right,
		StatusLine:   m.statusLine(),
		Footer:       footer,
		Notification: notification,
	})
}

func (m Model) statusLine() string {
	if m.Status.Text == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", levelFromError(m.Status.IsError), m.Status.Text)
}
