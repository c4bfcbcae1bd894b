package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := MigrateUp(repo.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func sampleTask(id string) Task {
	minutes := 45
	done := time.Date(2026, time.March, 9, 15, 0, 0, 0, time.UTC)
	return Task{
		ID:              id,
		Name:            "task " + id,
		Notes:           "some notes",
		Deadline:        time.Date(2026, time.March, 12, 18, 0, 0, 0, time.UTC),
		EstimateMinutes: 30,
		ActualMinutes:   &minutes,
		Done:            true,
		CompletedAt:     &done,
		Priority:        72,
		Mood:            "Focused",
		Difficulty:      40,
		DifficultyRated: true,
		CreatedAt:       time.Date(2026, time.March, 8, 9, 0, 0, 0, time.UTC),
	}
}

func TestTaskCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := sampleTask("t1")
	if err := repo.CreateTask(ctx, in); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Name != in.Name || got.Mood != in.Mood || got.Priority != in.Priority {
		t.Errorf("got %+v", got)
	}
	if got.ActualMinutes == nil || *got.ActualMinutes != 45 {
		t.Errorf("actual minutes = %v", got.ActualMinutes)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(*in.CompletedAt) {
		t.Errorf("completed at = %v", got.CompletedAt)
	}
	if !got.Deadline.Equal(in.Deadline) {
		t.Errorf("deadline = %v, want %v", got.Deadline, in.Deadline)
	}

	got.Priority = 11
	got.Done = false
	got.CompletedAt = nil
	if err := repo.UpdateTask(ctx, got); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	updated, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask after update: %v", err)
	}
	if updated.Priority != 11 || updated.Done || updated.CompletedAt != nil {
		t.Errorf("update not persisted: %+v", updated)
	}

	if err := repo.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := repo.GetTask(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteTask(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: %v, want ErrNotFound", err)
	}
	got.ID = "t1"
	if err := repo.UpdateTask(ctx, got); !errors.Is(err, ErrNotFound) {
		t.Errorf("update after delete: %v, want ErrNotFound", err)
	}
}

func TestListTasksFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	pendingTask := sampleTask("pending")
	pendingTask.Done = false
	pendingTask.CompletedAt = nil
	if err := repo.CreateTask(ctx, pendingTask); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := repo.CreateTask(ctx, sampleTask("finished")); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	pending := false
	got, err := repo.ListTasks(ctx, TaskListFilter{Done: &pending})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(got) != 1 || got[0].ID != "pending" {
		t.Errorf("pending filter returned %d tasks", len(got))
	}

	all, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered list returned %d tasks", len(all))
	}

	limited, err := repo.ListTasks(ctx, TaskListFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d tasks", len(limited))
	}
}

func TestSubtasksCascadeWithTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	parent := sampleTask("parent")
	if err := repo.CreateTask(ctx, parent); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	for i, id := range []string{"s1", "s2"} {
		if err := repo.CreateSubtask(ctx, Subtask{ID: id, TaskID: "parent", Name: id, Position: i}); err != nil {
			t.Fatalf("CreateSubtask: %v", err)
		}
	}

	subs, err := repo.ListSubtasks(ctx, "parent")
	if err != nil {
		t.Fatalf("ListSubtasks: %v", err)
	}
	if len(subs) != 2 || subs[0].ID != "s1" || subs[1].ID != "s2" {
		t.Errorf("subtasks = %+v", subs)
	}

	if err := repo.DeleteTask(ctx, "parent"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := repo.GetSubtask(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("subtask survived task delete: %v", err)
	}
}

func TestProjectDeleteClearsTaskReference(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	project := Project{
		ID:        "p1",
		Name:      "spring cleanup",
		CreatedAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	task := sampleTask("owned")
	projectID := "p1"
	task.ProjectID = &projectID
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := repo.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	got, err := repo.GetTask(ctx, "owned")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ProjectID != nil {
		t.Errorf("task still references deleted project %q", *got.ProjectID)
	}
}

func TestHabitRoundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	last := time.Date(2026, time.March, 9, 7, 0, 0, 0, time.UTC)
	in := Habit{
		ID:            "h1",
		Name:          "Morning coding session",
		Frequency:     "daily",
		Streak:        4,
		LastCompleted: &last,
		Mood:          "Focused",
		CreatedAt:     last.AddDate(0, 0, -4),
	}
	if err := repo.CreateHabit(ctx, in); err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}

	got, err := repo.GetHabit(ctx, "h1")
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got.Streak != 4 || got.LastCompleted == nil || !got.LastCompleted.Equal(last) {
		t.Errorf("got %+v", got)
	}

	got.Streak = 0
	got.LastCompleted = nil
	if err := repo.UpdateHabit(ctx, got); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	updated, err := repo.GetHabit(ctx, "h1")
	if err != nil {
		t.Fatalf("GetHabit after update: %v", err)
	}
	if updated.Streak != 0 || updated.LastCompleted != nil {
		t.Errorf("update not persisted: %+v", updated)
	}

	if err := repo.DeleteHabit(ctx, "h1"); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, err := repo.GetHabit(ctx, "h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestToolAndRewardFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, time.March, 9, 7, 0, 0, 0, time.UTC)

	tools := []Tool{
		{ID: "w1", Name: "Watering Can", Type: "water", UnlockLevel: 1, HealthDelta: 4, CreatedAt: created},
		{ID: "w2", Name: "Pruning Shears", Type: "prune", UnlockLevel: 3, LeafDelta: -3, Used: true, CreatedAt: created},
	}
	for _, tool := range tools {
		if err := repo.CreateTool(ctx, tool); err != nil {
			t.Fatalf("CreateTool: %v", err)
		}
	}
	unused := false
	got, err := repo.ListTools(ctx, ToolListFilter{Used: &unused})
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w1" {
		t.Errorf("unused filter returned %+v", got)
	}

	rewards := []Reward{
		{ID: "r1", Name: "Spring Rain", Kind: "growth", Rarity: "Common", HeightDelta: 0.1, CreatedAt: created},
		{ID: "r2", Name: "Sakura Graft", Kind: "decoration", Rarity: "Rare", BeautyDelta: 8, Style: "sakura", Used: true, CreatedAt: created},
	}
	for _, reward := range rewards {
		if err := repo.CreateReward(ctx, reward); err != nil {
			t.Fatalf("CreateReward: %v", err)
		}
	}
	used := true
	gotRewards, err := repo.ListRewards(ctx, RewardListFilter{Used: &used})
	if err != nil {
		t.Fatalf("ListRewards: %v", err)
	}
	if len(gotRewards) != 1 || gotRewards[0].ID != "r2" {
		t.Errorf("used filter returned %+v", gotRewards)
	}
	if gotRewards[0].Style != "sakura" || gotRewards[0].BeautyDelta != 8 {
		t.Errorf("effect columns lost: %+v", gotRewards[0])
	}
}

func TestTreeStateUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetTreeState(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty db err = %v, want ErrNotFound", err)
	}

	state := TreeState{
		HeightMeters:   0.5,
		Leaves:         10,
		Health:         100,
		Beauty:         50,
		Decorations:    []string{"Wind Chime"},
		Level:          1,
		LeafStyle:      "classic",
		BarkTexture:    "smooth",
		SpecialEffects: []string{},
		LastReset:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveTreeState(ctx, state); err != nil {
		t.Fatalf("SaveTreeState: %v", err)
	}

	state.Points = 140
	state.Level = 2
	state.Decorations = append(state.Decorations, "Clay Pot")
	if err := repo.SaveTreeState(ctx, state); err != nil {
		t.Fatalf("SaveTreeState upsert: %v", err)
	}

	got, err := repo.GetTreeState(ctx)
	if err != nil {
		t.Fatalf("GetTreeState: %v", err)
	}
	if got.Level != 2 || got.Points != 140 {
		t.Errorf("got %+v", got)
	}
	if len(got.Decorations) != 2 {
		t.Errorf("decorations = %v", got.Decorations)
	}
	if !got.LastReset.Equal(state.LastReset) {
		t.Errorf("last reset = %v", got.LastReset)
	}
}

func TestTreeSnapshots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		snap := TreeSnapshot{
			TakenAt: time.Date(2026, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			State: TreeState{
				HeightMeters: float64(i),
				Leaves:       i * 10,
				Health:       90,
				Beauty:       60,
				Level:        i,
				LastReset:    time.Date(2026, time.Month(i), 1, 0, 0, 0, 0, time.UTC),
			},
		}
		if err := repo.AppendTreeSnapshot(ctx, snap); err != nil {
			t.Fatalf("AppendTreeSnapshot: %v", err)
		}
	}

	got, err := repo.ListTreeSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListTreeSnapshots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(got))
	}
	if got[0].State.Level != 1 || got[1].State.Level != 2 {
		t.Errorf("snapshot order: %+v", got)
	}
	if !got[1].State.LastReset.Equal(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("snapshot state last reset = %v", got[1].State.LastReset)
	}
}

func TestCorruptSnapshotSkipped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	snap := TreeSnapshot{
		TakenAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		State:   TreeState{Level: 1, Health: 90, LastReset: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := repo.AppendTreeSnapshot(ctx, snap); err != nil {
		t.Fatalf("AppendTreeSnapshot: %v", err)
	}
	if _, err := repo.DB().Exec(
		`INSERT INTO tree_history (taken_at, state_json) VALUES (?, ?)`,
		"2026-04-01T00:00:00Z", "{not json",
	); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	got, err := repo.ListTreeSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListTreeSnapshots: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d snapshots, want the corrupt row skipped", len(got))
	}
}

func TestCorruptDecorationListTolerated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	state := TreeState{Level: 1, Health: 100, LastReset: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)}
	if err := repo.SaveTreeState(ctx, state); err != nil {
		t.Fatalf("SaveTreeState: %v", err)
	}
	if _, err := repo.DB().Exec(`UPDATE tree_state SET decorations = '{broken' WHERE id = 1`); err != nil {
		t.Fatalf("corrupt decorations: %v", err)
	}

	got, err := repo.GetTreeState(ctx)
	if err != nil {
		t.Fatalf("GetTreeState: %v", err)
	}
	if len(got.Decorations) != 0 {
		t.Errorf("decorations = %v, want empty on corruption", got.Decorations)
	}
}

func TestAppState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetAppState(ctx, "current_mood"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := repo.SetAppState(ctx, "current_mood", "Focused"); err != nil {
		t.Fatalf("SetAppState: %v", err)
	}
	if err := repo.SetAppState(ctx, "current_mood", "Relaxed"); err != nil {
		t.Fatalf("SetAppState upsert: %v", err)
	}
	got, err := repo.GetAppState(ctx, "current_mood")
	if err != nil {
		t.Fatalf("GetAppState: %v", err)
	}
	if got != "Relaxed" {
		t.Errorf("got %q, want Relaxed", got)
	}
}
