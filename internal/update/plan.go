package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verdantapp/sprout/internal/engine"
)

func (m Model) openPlanPanel() (tea.Model, tea.Cmd) {
	if m.planner == nil {
		m.ok("assistant not configured, set SPROUT_OPENAI_API_KEY")
		return m, nil
	}
	m.Plan = PlanState{Active: true}
	m.planGoalArea.Reset()
	m.planGoalArea.Focus()
	return m, nil
}

func (m Model) handlePlanKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Plan.Waiting {
		if msg.String() == "esc" {
			m.Plan = PlanState{}
			m.planGoalArea.Blur()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.Plan = PlanState{}
		m.planGoalArea.Blur()
		return m, nil
	case "enter":
		goal := strings.TrimSpace(m.planGoalArea.Value())
		if goal == "" {
			m.Plan.Err = "describe a goal first"
			return m, nil
		}
		m.Plan.Waiting = true
		m.Plan.Goal = goal
		m.Plan.Err = ""
		m.Plan.Drafts = nil
		return m, tea.Batch(m.planSpinner.Tick, planCmd(m.planner, m.ctx, goal))
	case "a":
		if len(m.Plan.Drafts) > 0 {
			return m.acceptPlanDrafts()
		}
	}

	var cmd tea.Cmd
	m.planGoalArea, cmd = m.planGoalArea.Update(msg)
	return m, cmd
}

func planCmd(planner PlanSource, ctx context.Context, goal string) tea.Cmd {
	return func() tea.Msg {
		drafts, err := planner.Plan(ctx, goal)
		return PlanResultMsg{Drafts: drafts, Err: err}
	}
}

func (m Model) handlePlanResult(msg PlanResultMsg) (tea.Model, tea.Cmd) {
	m.Plan.Waiting = false
	if msg.Err != nil {
		m.Plan.Err = msg.Err.Error()
		return m, nil
	}
	m.Plan.Drafts = msg.Drafts
	m.ok(fmt.Sprintf("assistant proposed %d tasks, press a to accept", len(msg.Drafts)))
	return m, nil
}

// acceptPlanDrafts turns the drafts into a project with its tasks.
// Drafts carry no deadline so accepted tasks default to one week out.
func (m Model) acceptPlanDrafts() (tea.Model, tea.Cmd) {
	name := m.Plan.Goal
	if name == "" {
		name = strings.TrimSpace(m.planGoalArea.Value())
	}
	project, err := m.svc.AddProject(m.ctx, name, "planned with the assistant", nil)
	if err != nil {
		m.fail(err)
		return m, nil
	}

	deadline := defaultDraftDeadline(m.nowFn())
	added := 0
	for _, draft := range m.Plan.Drafts {
		_, err := m.svc.AddTask(m.ctx, engine.AddTaskInput{
			Name:      draft.Name,
			Notes:     draft.Description,
			Deadline:  deadline,
			ProjectID: &project.ID,
			Subtasks:  draft.Subtasks,
		})
		if err != nil {
			m.fail(err)
			return m, nil
		}
		added++
	}
	m.Plan = PlanState{}
	m.planGoalArea.Blur()
	m.refreshTasks()
	m.refreshHorizons()
	m.ok(fmt.Sprintf("added project %q with %d tasks", project.Name, added))
	return m, nil
}
