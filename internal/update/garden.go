package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verdantapp/sprout/internal/engine"
)

func (m Model) handleGardenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "R":
		tree, err := m.svc.ResetTree(m.ctx)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.Tree = tree
		m.ok("tree archived and replanted")
		return m, nil
	}
	return m, nil
}

func (m Model) handleHabitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.HabitCursor < len(m.Habits)-1 {
			m.HabitCursor++
		}
		return m, nil
	case "k", "up":
		if m.HabitCursor > 0 {
			m.HabitCursor--
		}
		return m, nil
	case "enter":
		if m.HabitCursor >= len(m.Habits) {
			return m, nil
		}
		habit := m.Habits[m.HabitCursor]
		if err := m.svc.MarkHabitDone(m.ctx, habit.ID); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refreshHabits()
		m.ok(fmt.Sprintf("marked %q done for today", habit.Name))
		return m, nil
	}
	return m, nil
}

func (m Model) handleInventoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.InvSection == SectionTools {
			m.InvSection = SectionRewards
		} else {
			m.InvSection = SectionTools
		}
		m.InvCursor = 0
		return m, nil
	case "j", "down":
		if m.InvCursor < m.inventoryLen()-1 {
			m.InvCursor++
		}
		return m, nil
	case "k", "up":
		if m.InvCursor > 0 {
			m.InvCursor--
		}
		return m, nil
	case "enter":
		return m.useSelectedItem()
	}
	return m, nil
}

func (m Model) useSelectedItem() (tea.Model, tea.Cmd) {
	if m.InvCursor >= m.inventoryLen() {
		return m, nil
	}

	var (
		name string
		err  error
	)
	if m.InvSection == SectionRewards {
		reward := m.Rewards[m.InvCursor]
		name = reward.Name
		_, err = m.svc.ApplyReward(m.ctx, reward.ID)
	} else {
		tool := m.Tools[m.InvCursor]
		name = tool.Name
		_, err = m.svc.UseTool(m.ctx, tool.ID)
	}

	var locked engine.LockedError
	switch {
	case err == nil:
		m.refreshTree()
		m.refreshInventory()
		m.ok(fmt.Sprintf("applied %s to the tree", name))
	case errors.As(err, &locked):
		m.ok(fmt.Sprintf("%s unlocks at level %d, keep growing", locked.Name, locked.RequiredLevel))
	case errors.Is(err, engine.ErrAlreadyUsed):
		m.ok(fmt.Sprintf("%s was already used", name))
	default:
		m.fail(err)
	}
	return m, nil
}
