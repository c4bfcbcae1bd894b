package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verdantapp/sprout/internal/commands"
	"github.com/verdantapp/sprout/internal/engine"
	"github.com/verdantapp/sprout/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		return m.runPaletteCommand(input)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) runPaletteCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	if cmd.Type == commands.TypePlan {
		next, teaCmd := m.openPlanPanel()
		planModel, ok := next.(Model)
		if !ok || planModel.planner == nil {
			return next, teaCmd
		}
		planModel.planGoalArea.SetValue(cmd.Plan.Goal)
		planModel.Plan.Goal = cmd.Plan.Goal
		planModel.Plan.Waiting = true
		return planModel, tea.Batch(planModel.planSpinner.Tick, planCmd(planModel.planner, planModel.ctx, cmd.Plan.Goal))
	}

	result, err := m.executeCommand(cmd)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.ok(result.Message)
	return m, nil
}

// runCommand parses and executes in one shot; quick add reuses it.
func (m *Model) runCommand(input string) (commands.Result, error) {
	cmd, err := commands.Parse(input)
	if err != nil {
		return commands.Result{}, err
	}
	return m.executeCommand(cmd)
}

func (m *Model) executeCommand(cmd commands.Command) (commands.Result, error) {
	return commands.Execute(cmd, commands.Handlers{
		Add:  m.execAdd,
		Done: m.execDone,
		Mood: m.execMood,
		Rate: m.execRate,
		Use:  m.execUse,
		Show: m.execShow,
	})
}

func (m *Model) execAdd(args commands.AddArgs) (commands.Result, error) {
	deadline := defaultDraftDeadline(m.nowFn())
	if args.Due != "" {
		parsed, err := parseDueShorthand(args.Due, m.nowFn())
		if err != nil {
			return commands.Result{}, err
		}
		deadline = parsed
	}
	estimate := 0
	if args.Estimate != "" {
		parsed, err := parseEstimate(args.Estimate)
		if err != nil {
			return commands.Result{}, err
		}
		estimate = parsed
	}
	mood := model.MoodNone
	if args.Mood != "" {
		parsed, err := model.ParseMood(args.Mood)
		if err != nil {
			return commands.Result{}, err
		}
		mood = parsed
	}

	task, err := m.svc.AddTask(m.ctx, engine.AddTaskInput{
		Name:            args.Name,
		Deadline:        deadline,
		EstimateMinutes: estimate,
		Mood:            mood,
	})
	if err != nil {
		return commands.Result{}, err
	}
	m.refreshTasks()
	m.refreshHorizons()
	return commands.Result{
		Message: fmt.Sprintf("added %q due %s (difficulty %d)", task.Name, formatDeadline(task.Deadline), task.Difficulty),
	}, nil
}

func (m *Model) execDone(args commands.DoneArgs) (commands.Result, error) {
	task, err := m.resolveTask(args.Target)
	if err != nil {
		return commands.Result{}, err
	}
	result, err := m.svc.CompleteTask(m.ctx, task.ID)
	if err != nil {
		return commands.Result{}, err
	}
	m.refreshAll()
	return commands.Result{Message: completionNote(result)}, nil
}

func (m *Model) execMood(args commands.MoodArgs) (commands.Result, error) {
	mood, err := model.ParseMood(args.Mood)
	if err != nil {
		return commands.Result{}, err
	}
	if err := m.svc.SetMood(m.ctx, mood); err != nil {
		return commands.Result{}, err
	}
	m.refreshAll()
	return commands.Result{Message: fmt.Sprintf("mood set to %s, priorities updated", mood)}, nil
}

func (m *Model) execRate(args commands.RateArgs) (commands.Result, error) {
	task, err := m.resolveTask(args.Target)
	if err != nil {
		return commands.Result{}, err
	}
	updated, err := m.svc.RateTaskDifficulty(m.ctx, task.ID, engine.Rating(args.Rating))
	if err != nil {
		return commands.Result{}, err
	}
	m.refreshTasks()
	return commands.Result{
		Message: fmt.Sprintf("rated %q %s (difficulty %d)", updated.Name, args.Rating, updated.Difficulty),
	}, nil
}

func (m *Model) execUse(args commands.UseArgs) (commands.Result, error) {
	target := strings.ToLower(strings.TrimSpace(args.Target))
	for _, tool := range m.Tools {
		if tool.ID == args.Target || strings.ToLower(tool.Name) == target {
			if _, err := m.svc.UseTool(m.ctx, tool.ID); err != nil {
				return commands.Result{}, err
			}
			m.refreshTree()
			m.refreshInventory()
			return commands.Result{Message: fmt.Sprintf("applied %s to the tree", tool.Name)}, nil
		}
	}
	for _, reward := range m.Rewards {
		if reward.ID == args.Target || strings.ToLower(reward.Name) == target {
			if _, err := m.svc.ApplyReward(m.ctx, reward.ID); err != nil {
				return commands.Result{}, err
			}
			m.refreshTree()
			m.refreshInventory()
			return commands.Result{Message: fmt.Sprintf("applied %s to the tree", reward.Name)}, nil
		}
	}
	return commands.Result{}, fmt.Errorf("%w: no tool or reward matches %q", engine.ErrNotFound, args.Target)
}

func (m *Model) execShow(args commands.ShowArgs) (commands.Result, error) {
	view, ok := map[string]View{
		"garden":    ViewGarden,
		"tree":      ViewGarden,
		"tasks":     ViewTasks,
		"schedule":  ViewSchedule,
		"habits":    ViewHabits,
		"inventory": ViewInventory,
		"tools":     ViewInventory,
		"rewards":   ViewInventory,
	}[args.Subject]
	if !ok {
		return commands.Result{}, fmt.Errorf("%w: unknown view %q", engine.ErrInvalidInput, args.Subject)
	}
	m.CurrentView = view
	if args.Subject == "rewards" {
		m.InvSection = SectionRewards
	}
	m.refreshAll()
	return commands.Result{Message: "showing " + strings.ToLower(string(view))}, nil
}

// resolveTask accepts an id, a 1-based list position, or a unique name
// prefix, in that order.
func (m *Model) resolveTask(target string) (model.Task, error) {
	target = strings.TrimSpace(target)
	for _, t := range m.Tasks {
		if t.ID == target {
			return t, nil
		}
	}
	if pos, ok := parseListPosition(target); ok {
		if pos < 1 || pos > len(m.Tasks) {
			return model.Task{}, fmt.Errorf("%w: no task at position %d", engine.ErrNotFound, pos)
		}
		return m.Tasks[pos-1], nil
	}

	prefix := strings.ToLower(target)
	var match *model.Task
	for i, t := range m.Tasks {
		if strings.HasPrefix(strings.ToLower(t.Name), prefix) {
			if match != nil {
				return model.Task{}, fmt.Errorf("%w: %q matches more than one task", engine.ErrInvalidInput, target)
			}
			match = &m.Tasks[i]
		}
	}
	if match == nil {
		return model.Task{}, fmt.Errorf("%w: no task matches %q", engine.ErrNotFound, target)
	}
	return *match, nil
}
