package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateSubtask(ctx context.Context, in Subtask) error
	GetSubtask(ctx context.Context, id string) (Subtask, error)
	UpdateSubtask(ctx context.Context, in Subtask) error
	ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error)

	CreateProject(ctx context.Context, in Project) error
	GetProject(ctx context.Context, id string) (Project, error)
	UpdateProject(ctx context.Context, in Project) error
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]Project, error)

	CreateHabit(ctx context.Context, in Habit) error
	GetHabit(ctx context.Context, id string) (Habit, error)
	UpdateHabit(ctx context.Context, in Habit) error
	DeleteHabit(ctx context.Context, id string) error
	ListHabits(ctx context.Context) ([]Habit, error)

	CreateTool(ctx context.Context, in Tool) error
	GetTool(ctx context.Context, id string) (Tool, error)
	UpdateTool(ctx context.Context, in Tool) error
	ListTools(ctx context.Context, filter ToolListFilter) ([]Tool, error)

	CreateReward(ctx context.Context, in Reward) error
	GetReward(ctx context.Context, id string) (Reward, error)
	UpdateReward(ctx context.Context, in Reward) error
	ListRewards(ctx context.Context, filter RewardListFilter) ([]Reward, error)

	GetTreeState(ctx context.Context) (TreeState, error)
	SaveTreeState(ctx context.Context, in TreeState) error
	AppendTreeSnapshot(ctx context.Context, in TreeSnapshot) error
	ListTreeSnapshots(ctx context.Context) ([]TreeSnapshot, error)

	GetAppState(ctx context.Context, key string) (string, error)
	SetAppState(ctx context.Context, key, value string) error
}
