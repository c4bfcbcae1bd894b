package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verdantapp/sprout/internal/model"
	"github.com/verdantapp/sprout/internal/storage"
)

const moodStateKey = "current_mood"

// rarityBonusDivisor maps a task difficulty in [0,100] onto the bonus
// scale the rarity table formulas expect.
const rarityBonusDivisor = 10.0

// LockedError indicates a tool is gated behind a progression level.
type LockedError struct {
	Name          string
	RequiredLevel int
}

func (e LockedError) Error() string {
	return fmt.Sprintf("tool %q unlocks at level %d", e.Name, e.RequiredLevel)
}

// Service owns all engine state access. It is constructed once per
// session around the storage collaborator; there is no package-level
// mutable state. A single caller drives it per user, so no locking.
type Service struct {
	repo  storage.Repository
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock fixes "now" for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand injects the random source for reward and tool draws.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompletionResult reports everything a completion produced.
type CompletionResult struct {
	Task          model.Task
	PointsAwarded int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
	Reward        *model.Reward
	Tool          *model.Tool
	NewHabit      *model.Habit
}

// UpkeepResult reports the idempotent daily pass outcome.
type UpkeepResult struct {
	StreaksAdvanced int
	StreaksReset    int
	TreeWasReset    bool
}

type AddTaskInput struct {
	Name            string
	Notes           string
	Deadline        time.Time
	EstimateMinutes int
	Mood            model.Mood
	Rating          Rating
	ProjectID       *string
	Subtasks        []string
}

func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (model.Task, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Task{}, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	if in.Deadline.IsZero() {
		return model.Task{}, fmt.Errorf("%w: task deadline is required", ErrInvalidInput)
	}
	if in.EstimateMinutes < 0 {
		return model.Task{}, fmt.Errorf("%w: estimate minutes must not be negative", ErrInvalidInput)
	}
	if in.Mood != model.MoodNone && !in.Mood.IsValid() {
		return model.Task{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, in.Mood)
	}
	if in.Rating != RatingNone && !in.Rating.IsValid() {
		return model.Task{}, fmt.Errorf("%w: unknown rating %q", ErrInvalidInput, in.Rating)
	}

	now := s.now()
	task := model.Task{
		ID:              s.newID(),
		Name:            strings.TrimSpace(in.Name),
		Notes:           in.Notes,
		Deadline:        in.Deadline,
		EstimateMinutes: in.EstimateMinutes,
		Mood:            in.Mood,
		Difficulty:      EstimateDifficulty(in.Name, in.Notes, in.EstimateMinutes, in.Rating),
		DifficultyRated: in.Rating != RatingNone,
		ProjectID:       in.ProjectID,
		CreatedAt:       now,
	}
	if err := s.repo.CreateTask(ctx, taskToRecord(task)); err != nil {
		return model.Task{}, err
	}
	for i, name := range in.Subtasks {
		if strings.TrimSpace(name) == "" {
			continue
		}
		st := storage.Subtask{
			ID:       s.newID(),
			TaskID:   task.ID,
			Name:     strings.TrimSpace(name),
			Position: i,
		}
		if err := s.repo.CreateSubtask(ctx, st); err != nil {
			return model.Task{}, err
		}
		task.Subtasks = append(task.Subtasks, model.Subtask{ID: st.ID, Name: st.Name})
	}
	if err := s.rerankPending(ctx); err != nil {
		return model.Task{}, err
	}
	return s.Task(ctx, task.ID)
}

func (s *Service) Task(ctx context.Context, id string) (model.Task, error) {
	rec, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, mapStorageErr(err)
	}
	subtasks, err := s.repo.ListSubtasks(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return taskFromRecord(rec, subtasks), nil
}

// Tasks returns all tasks ranked: pending sorted by priority descending
// (stable), completed after them in original order.
func (s *Service) Tasks(ctx context.Context) ([]model.Task, error) {
	mood, err := s.CurrentMood(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(recs))
	for _, rec := range recs {
		subtasks, listErr := s.repo.ListSubtasks(ctx, rec.ID)
		if listErr != nil {
			return nil, listErr
		}
		tasks = append(tasks, taskFromRecord(rec, subtasks))
	}
	return RankPending(tasks, mood, s.now()), nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return mapStorageErr(err)
	}
	return s.rerankPending(ctx)
}

func (s *Service) AddSubtask(ctx context.Context, taskID, name string) (model.Subtask, error) {
	if strings.TrimSpace(name) == "" {
		return model.Subtask{}, fmt.Errorf("%w: subtask name is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return model.Subtask{}, mapStorageErr(err)
	}
	existing, err := s.repo.ListSubtasks(ctx, taskID)
	if err != nil {
		return model.Subtask{}, err
	}
	rec := storage.Subtask{
		ID:       s.newID(),
		TaskID:   taskID,
		Name:     strings.TrimSpace(name),
		Position: len(existing),
	}
	if err := s.repo.CreateSubtask(ctx, rec); err != nil {
		return model.Subtask{}, err
	}
	return model.Subtask{ID: rec.ID, Name: rec.Name}, nil
}

func (s *Service) CompleteSubtask(ctx context.Context, id string) error {
	rec, err := s.repo.GetSubtask(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if rec.Done {
		return nil
	}
	now := s.now()
	rec.Done = true
	rec.CompletedAt = &now
	return mapStorageErr(s.repo.UpdateSubtask(ctx, rec))
}

// CompleteTask runs the full completion flow: difficulty estimation for
// unrated tasks, point accrual with level evaluation, the reward draw, a
// probabilistic tool grant, and habit re-detection. Priorities of the
// remaining pending tasks are recomputed afterwards.
func (s *Service) CompleteTask(ctx context.Context, id string) (*CompletionResult, error) {
	rec, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	if rec.Done {
		return nil, fmt.Errorf("%w: task %s is already done", ErrInvalidInput, id)
	}

	now := s.now()
	subtasks, err := s.repo.ListSubtasks(ctx, id)
	if err != nil {
		return nil, err
	}
	task := taskFromRecord(rec, subtasks)
	if !task.DifficultyRated && task.Difficulty == 0 {
		task.Difficulty = EstimateDifficulty(task.Name, task.Notes, task.EstimateMinutes, RatingNone)
	}
	task.Done = true
	task.CompletedAt = &now
	if err := s.repo.UpdateTask(ctx, taskToRecord(task)); err != nil {
		return nil, err
	}

	tree, err := s.treeState(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := tree.Level
	points := task.Difficulty
	AddPoints(&tree, points)
	tree.CompletedTasks++

	result := &CompletionResult{
		Task:          task,
		PointsAwarded: points,
		LevelBefore:   levelBefore,
		LevelAfter:    tree.Level,
		LevelUp:       tree.Level > levelBefore,
	}

	reward, err := DrawReward(s.rng, float64(task.Difficulty)/rarityBonusDivisor)
	if err != nil {
		return nil, err
	}
	reward.ID = s.newID()
	if err := s.repo.CreateReward(ctx, rewardToRecord(reward, now)); err != nil {
		return nil, err
	}
	result.Reward = &reward

	if tool, ok := GrantTool(s.rng, tree.Level, task.Difficulty); ok {
		tool.ID = s.newID()
		if err := s.repo.CreateTool(ctx, toolToRecord(tool, now)); err != nil {
			return nil, err
		}
		result.Tool = &tool
	}

	if err := s.repo.SaveTreeState(ctx, treeToRecord(tree)); err != nil {
		return nil, err
	}

	habit, err := s.detectHabit(ctx, now)
	if err != nil {
		return nil, err
	}
	result.NewHabit = habit

	if err := s.rerankPending(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) detectHabit(ctx context.Context, now time.Time) (*model.Habit, error) {
	done := true
	completedRecs, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Done: &done})
	if err != nil {
		return nil, err
	}
	completed := make([]model.Task, 0, len(completedRecs))
	for _, rec := range completedRecs {
		completed = append(completed, taskFromRecord(rec, nil))
	}
	existing, err := s.Habits(ctx)
	if err != nil {
		return nil, err
	}
	habit, ok := DetectHabit(completed, existing, now)
	if !ok {
		return nil, nil
	}
	habit.ID = s.newID()
	if err := s.repo.CreateHabit(ctx, habitToRecord(habit)); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *Service) AddProject(ctx context.Context, name, description string, deadline *time.Time) (model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return model.Project{}, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	project := model.Project{
		ID:          s.newID(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Deadline:    deadline,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateProject(ctx, projectToRecord(project)); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *Service) CompleteProject(ctx context.Context, id string) error {
	rec, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if rec.Done {
		return fmt.Errorf("%w: project %s is already done", ErrInvalidInput, id)
	}
	now := s.now()
	rec.Done = true
	rec.CompletedAt = &now
	return mapStorageErr(s.repo.UpdateProject(ctx, rec))
}

// DeleteProject removes the project; owned tasks keep living with their
// project reference cleared (weak ownership, no cascade).
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return mapStorageErr(s.repo.DeleteProject(ctx, id))
}

func (s *Service) Projects(ctx context.Context) ([]model.Project, error) {
	recs, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, projectFromRecord(rec))
	}
	return out, nil
}

// CurrentMood reads the ambient mood. A corrupt stored value degrades
// to no mood rather than failing the load.
func (s *Service) CurrentMood(ctx context.Context) (model.Mood, error) {
	raw, err := s.repo.GetAppState(ctx, moodStateKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.MoodNone, nil
		}
		return model.MoodNone, err
	}
	return storedMood(raw), nil
}

func (s *Service) SetMood(ctx context.Context, mood model.Mood) error {
	if mood != model.MoodNone && !mood.IsValid() {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, mood)
	}
	if err := s.repo.SetAppState(ctx, moodStateKey, string(mood)); err != nil {
		return err
	}
	return s.rerankPending(ctx)
}

// RateTaskDifficulty is the post-hoc manual rating path; it overwrites
// the estimate with the flat rating score and marks the task rated.
func (s *Service) RateTaskDifficulty(ctx context.Context, id string, rating Rating) (model.Task, error) {
	if !rating.IsValid() {
		return model.Task{}, fmt.Errorf("%w: unknown rating %q", ErrInvalidInput, rating)
	}
	rec, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, mapStorageErr(err)
	}
	rec.Difficulty = RateDifficulty(rating)
	rec.DifficultyRated = true
	if err := s.repo.UpdateTask(ctx, rec); err != nil {
		return model.Task{}, err
	}
	return s.Task(ctx, id)
}

// UseTool applies a tool's effect to the tree exactly once. A used tool
// is rejected with ErrAlreadyUsed; a tool above the current level is
// rejected with a LockedError.
func (s *Service) UseTool(ctx context.Context, id string) (model.TreeState, error) {
	rec, err := s.repo.GetTool(ctx, id)
	if err != nil {
		return model.TreeState{}, mapStorageErr(err)
	}
	tool := toolFromRecord(rec)
	if tool.Used {
		return model.TreeState{}, fmt.Errorf("%w: tool %s", ErrAlreadyUsed, id)
	}
	tree, err := s.treeState(ctx)
	if err != nil {
		return model.TreeState{}, err
	}
	if tree.Level < tool.UnlockLevel {
		return model.TreeState{}, LockedError{Name: tool.Name, RequiredLevel: tool.UnlockLevel}
	}
	tree.ApplyEffect(tool.Effect)
	tool.Used = true
	rec.Used = true
	if err := s.repo.UpdateTool(ctx, rec); err != nil {
		return model.TreeState{}, err
	}
	if err := s.repo.SaveTreeState(ctx, treeToRecord(tree)); err != nil {
		return model.TreeState{}, err
	}
	return tree, nil
}

// ApplyReward applies a drawn reward exactly once; decorations also
// register on the tree's decoration list.
func (s *Service) ApplyReward(ctx context.Context, id string) (model.TreeState, error) {
	rec, err := s.repo.GetReward(ctx, id)
	if err != nil {
		return model.TreeState{}, mapStorageErr(err)
	}
	reward := rewardFromRecord(rec)
	if reward.Used {
		return model.TreeState{}, fmt.Errorf("%w: reward %s", ErrAlreadyUsed, id)
	}
	tree, err := s.treeState(ctx)
	if err != nil {
		return model.TreeState{}, err
	}
	tree.ApplyEffect(reward.Effect)
	if reward.Kind == model.RewardDecoration {
		tree.Decorations = append(tree.Decorations, reward.Name)
	}
	reward.Used = true
	rec.Used = true
	if err := s.repo.UpdateReward(ctx, rec); err != nil {
		return model.TreeState{}, err
	}
	if err := s.repo.SaveTreeState(ctx, treeToRecord(tree)); err != nil {
		return model.TreeState{}, err
	}
	return tree, nil
}

func (s *Service) Tools(ctx context.Context) ([]model.Tool, error) {
	recs, err := s.repo.ListTools(ctx, storage.ToolListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]model.Tool, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toolFromRecord(rec))
	}
	return out, nil
}

func (s *Service) Rewards(ctx context.Context) ([]model.Reward, error) {
	recs, err := s.repo.ListRewards(ctx, storage.RewardListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]model.Reward, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rewardFromRecord(rec))
	}
	return out, nil
}

func (s *Service) Habits(ctx context.Context) ([]model.Habit, error) {
	recs, err := s.repo.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Habit, 0, len(recs))
	for _, rec := range recs {
		out = append(out, habitFromRecord(rec))
	}
	return out, nil
}

// MarkHabitDone records that the habit happened today. The streak
// itself only moves in the daily upkeep pass.
func (s *Service) MarkHabitDone(ctx context.Context, id string) error {
	rec, err := s.repo.GetHabit(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	now := s.now()
	rec.LastCompleted = &now
	return mapStorageErr(s.repo.UpdateHabit(ctx, rec))
}

func (s *Service) TreeState(ctx context.Context) (model.TreeState, error) {
	return s.treeState(ctx)
}

func (s *Service) TreeHistory(ctx context.Context) ([]model.TreeSnapshot, error) {
	recs, err := s.repo.ListTreeSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.TreeSnapshot, 0, len(recs))
	for _, rec := range recs {
		out = append(out, model.TreeSnapshot{TakenAt: rec.TakenAt, State: treeFromRecord(rec.State)})
	}
	return out, nil
}

// ResetTree archives the current epoch immediately on user request.
func (s *Service) ResetTree(ctx context.Context) (model.TreeState, error) {
	tree, err := s.treeState(ctx)
	if err != nil {
		return model.TreeState{}, err
	}
	return s.archiveAndReset(ctx, tree)
}

// Horizons buckets the pending set for the schedule view.
func (s *Service) Horizons(ctx context.Context) (Horizons, error) {
	mood, err := s.CurrentMood(ctx)
	if err != nil {
		return Horizons{}, err
	}
	done := false
	recs, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Done: &done})
	if err != nil {
		return Horizons{}, err
	}
	pending := make([]model.Task, 0, len(recs))
	for _, rec := range recs {
		pending = append(pending, taskFromRecord(rec, nil))
	}
	return BuildHorizons(pending, mood, s.now()), nil
}

// RunUpkeep performs the idempotent date-driven passes: habit streak
// maintenance and the monthly tree reset. It is invoked on load and
// whenever a day boundary fires; repeated invocation on the same day
// changes nothing further.
func (s *Service) RunUpkeep(ctx context.Context) (UpkeepResult, error) {
	var out UpkeepResult
	now := s.now()

	habits, err := s.repo.ListHabits(ctx)
	if err != nil {
		return out, err
	}
	for _, rec := range habits {
		habit := habitFromRecord(rec)
		before := habit.Streak
		if !AdvanceStreak(&habit, now) {
			continue
		}
		if habit.Streak > before {
			out.StreaksAdvanced++
		} else {
			out.StreaksReset++
		}
		if err := s.repo.UpdateHabit(ctx, habitToRecord(habit)); err != nil {
			return out, err
		}
	}

	tree, err := s.treeState(ctx)
	if err != nil {
		return out, err
	}
	if MonthlyResetDue(tree, now) {
		if _, err := s.archiveAndReset(ctx, tree); err != nil {
			return out, err
		}
		out.TreeWasReset = true
	}
	return out, nil
}

func (s *Service) archiveAndReset(ctx context.Context, tree model.TreeState) (model.TreeState, error) {
	now := s.now()
	snapshot, fresh := ResetTree(tree, now)
	if err := s.repo.AppendTreeSnapshot(ctx, storage.TreeSnapshot{
		TakenAt: snapshot.TakenAt,
		State:   treeToRecord(snapshot.State),
	}); err != nil {
		return model.TreeState{}, err
	}
	if err := s.repo.SaveTreeState(ctx, treeToRecord(fresh)); err != nil {
		return model.TreeState{}, err
	}
	return fresh, nil
}

// treeState seeds the default state on first access.
func (s *Service) treeState(ctx context.Context) (model.TreeState, error) {
	rec, err := s.repo.GetTreeState(ctx)
	if err == nil {
		return treeFromRecord(rec), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return model.TreeState{}, err
	}
	fresh := model.DefaultTreeState(s.now())
	if saveErr := s.repo.SaveTreeState(ctx, treeToRecord(fresh)); saveErr != nil {
		return model.TreeState{}, saveErr
	}
	return fresh, nil
}

// rerankPending recomputes and persists priority scores for the pending
// set. Completed tasks are left untouched; their scores are stale by
// definition.
func (s *Service) rerankPending(ctx context.Context) error {
	mood, err := s.CurrentMood(ctx)
	if err != nil {
		return err
	}
	done := false
	recs, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Done: &done})
	if err != nil {
		return err
	}
	now := s.now()
	for _, rec := range recs {
		task := taskFromRecord(rec, nil)
		score := PriorityScore(task, mood, now)
		if score == rec.Priority {
			continue
		}
		rec.Priority = score
		if err := s.repo.UpdateTask(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func mapStorageErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
