package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/verdantapp/sprout/internal/assist"
	"github.com/verdantapp/sprout/internal/engine"
	"github.com/verdantapp/sprout/internal/model"
	"github.com/verdantapp/sprout/internal/upkeep"
)

type View string

const (
	ViewGarden    View = "Garden"
	ViewTasks     View = "Tasks"
	ViewSchedule  View = "Schedule"
	ViewHabits    View = "Habits"
	ViewInventory View = "Inventory"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Garden    string
	Tasks     string
	Schedule  string
	Habits    string
	Inventory string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type PlanState struct {
	Active  bool
	Waiting bool
	Goal    string
	Drafts  []assist.TaskDraft
	Err     string
}

// InventorySection selects which inventory column the cursor lives in.
type InventorySection string

const (
	SectionTools   InventorySection = "tools"
	SectionRewards InventorySection = "rewards"
)

// PlanSource produces task drafts from a free-text goal. Nil means the
// assistant is not configured.
type PlanSource interface {
	Plan(ctx context.Context, goal string) ([]assist.TaskDraft, error)
}

// Model is the bubbletea application state. All domain state lives in
// the engine service; the model caches the last loaded snapshot for
// rendering and reloads after every mutation.
type Model struct {
	svc     *engine.Service
	planner PlanSource
	Upkeep  *upkeep.Engine
	ctx     context.Context
	nowFn   func() time.Time

	CurrentView    View
	SelectedTaskID string

	Tasks    []model.Task
	Tree     model.TreeState
	Horizons engine.Horizons
	Habits   []model.Habit
	Tools    []model.Tool
	Rewards  []model.Reward
	Mood     model.Mood

	TaskCursor  int
	HabitCursor int
	InvCursor   int
	InvSection  InventorySection

	Palette     CommandPaletteState
	Plan        PlanState
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	quickAddInput textinput.Model
	commandInput  textinput.Model
	planGoalArea  textarea.Model
	levelProgress progress.Model
	planSpinner   spinner.Model
	helpViewport  viewport.Model
	quickAddMode  bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type UpkeepDueMsg struct {
	Event upkeep.Event
}

type PlanResultMsg struct {
	Drafts []assist.TaskDraft
	Err    error
}

func NewModel(svc *engine.Service, eng *upkeep.Engine, planner PlanSource) Model {
	m := Model{
		svc:         svc,
		planner:     planner,
		Upkeep:      eng,
		ctx:         context.Background(),
		nowFn:       time.Now,
		CurrentView: ViewGarden,
		InvSection:  SectionTools,
		Keys: GlobalKeyMap{
			Garden:    "1",
			Tasks:     "2",
			Schedule:  "3",
			Habits:    "4",
			Inventory: "5",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	m.refreshAll()
	return m
}

func (m *Model) initBubbleComponents() {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "water the ferns due:tomorrow est:15"
	quickAdd.CharLimit = 160
	m.quickAddInput = quickAdd

	command := textinput.New()
	command.Placeholder = "add | done | mood | rate | use | plan | show"
	command.CharLimit = 200
	m.commandInput = command

	goal := textarea.New()
	goal.Placeholder = "describe the goal to break down"
	goal.SetHeight(3)
	m.planGoalArea = goal

	m.levelProgress = progress.New(progress.WithDefaultGradient())
	m.planSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpViewport = viewport.New(56, 10)
}

// refreshAll reloads every cached snapshot from the service. Errors
// land in the status bar; the stale snapshot keeps rendering.
func (m *Model) refreshAll() {
	m.refreshMood()
	m.refreshTasks()
	m.refreshTree()
	m.refreshHorizons()
	m.refreshHabits()
	m.refreshInventory()
}

func (m *Model) refreshMood() {
	mood, err := m.svc.CurrentMood(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Mood = mood
}

func (m *Model) refreshTasks() {
	tasks, err := m.svc.Tasks(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Tasks = tasks
	if m.TaskCursor >= len(tasks) {
		m.TaskCursor = 0
	}
	m.syncSelectedTask()
}

func (m *Model) refreshTree() {
	tree, err := m.svc.TreeState(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Tree = tree
}

func (m *Model) refreshHorizons() {
	horizons, err := m.svc.Horizons(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Horizons = horizons
}

func (m *Model) refreshHabits() {
	habits, err := m.svc.Habits(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Habits = habits
	if m.HabitCursor >= len(habits) {
		m.HabitCursor = 0
	}
}

func (m *Model) refreshInventory() {
	tools, err := m.svc.Tools(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	rewards, err := m.svc.Rewards(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Tools = tools
	m.Rewards = rewards
	if m.InvCursor >= m.inventoryLen() {
		m.InvCursor = 0
	}
}

func (m *Model) inventoryLen() int {
	if m.InvSection == SectionRewards {
		return len(m.Rewards)
	}
	return len(m.Tools)
}

func (m *Model) syncSelectedTask() {
	if len(m.Tasks) == 0 {
		m.SelectedTaskID = ""
		return
	}
	if m.TaskCursor < 0 || m.TaskCursor >= len(m.Tasks) {
		m.TaskCursor = 0
	}
	m.SelectedTaskID = m.Tasks[m.TaskCursor].ID
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m *Model) ok(text string) {
	m.Status = StatusBar{Text: text, IsError: false}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
