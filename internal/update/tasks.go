package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verdantapp/sprout/internal/engine"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.TaskCursor < len(m.Tasks)-1 {
			m.TaskCursor++
		}
		m.syncSelectedTask()
		return m, nil
	case "k", "up":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
		m.syncSelectedTask()
		return m, nil
	case "enter":
		m.quickAddMode = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		return m, nil
	case "c":
		return m.completeSelectedTask()
	case "x":
		return m.deleteSelectedTask()
	case "e":
		return m.rateSelectedTask(engine.RatingEasy)
	case "m":
		return m.rateSelectedTask(engine.RatingMedium)
	case "H":
		return m.rateSelectedTask(engine.RatingHard)
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quickAddMode = false
		m.quickAddInput.Blur()
		return m, nil
	case "enter":
		input := m.quickAddInput.Value()
		m.quickAddMode = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		m.submitQuickAdd(input)
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

// submitQuickAdd routes the raw line through the command parser so the
// quick-add field accepts the same inline modifiers as "/add".
func (m *Model) submitQuickAdd(input string) {
	result, err := m.runCommand("add " + input)
	if err != nil {
		m.fail(err)
		return
	}
	m.ok(result.Message)
}

func (m Model) completeSelectedTask() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if task.Done {
		m.ok(fmt.Sprintf("%q is already done", task.Name))
		return m, nil
	}
	result, err := m.svc.CompleteTask(m.ctx, task.ID)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.refreshAll()
	m.ok(completionNote(result))
	return m, nil
}

func completionNote(result *engine.CompletionResult) string {
	note := fmt.Sprintf("completed %q, +%d points", result.Task.Name, result.PointsAwarded)
	if result.LevelUp {
		note += fmt.Sprintf(", tree grew to level %d", result.LevelAfter)
	}
	if result.Reward != nil {
		note += fmt.Sprintf(", found %s (%s)", result.Reward.Name, result.Reward.Rarity)
	}
	if result.Tool != nil {
		note += fmt.Sprintf(", earned tool %s", result.Tool.Name)
	}
	if result.NewHabit != nil {
		note += fmt.Sprintf(", new habit spotted: %s", result.NewHabit.Name)
	}
	return note
}

func (m Model) deleteSelectedTask() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if err := m.svc.DeleteTask(m.ctx, task.ID); err != nil {
		m.fail(err)
		return m, nil
	}
	m.refreshTasks()
	m.refreshHorizons()
	m.ok(fmt.Sprintf("deleted %q", task.Name))
	return m, nil
}

func (m Model) rateSelectedTask(rating engine.Rating) (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	updated, err := m.svc.RateTaskDifficulty(m.ctx, task.ID, rating)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.refreshTasks()
	m.ok(fmt.Sprintf("rated %q %s (difficulty %d)", updated.Name, rating, updated.Difficulty))
	return m, nil
}

func (m *Model) selectedTask() (taskRef, bool) {
	if len(m.Tasks) == 0 || m.SelectedTaskID == "" {
		m.ok("no task selected")
		return taskRef{}, false
	}
	for _, t := range m.Tasks {
		if t.ID == m.SelectedTaskID {
			return taskRef{ID: t.ID, Name: t.Name, Done: t.Done}, true
		}
	}
	return taskRef{}, false
}

type taskRef struct {
	ID   string
	Name string
	Done bool
}
