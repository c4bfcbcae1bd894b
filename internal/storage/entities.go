package storage

import "time"

type Task struct {
	ID              string
	Name            string
	Notes           string
	Deadline        time.Time
	EstimateMinutes int
	ActualMinutes   *int
	Done            bool
	CompletedAt     *time.Time
	Priority        int
	Mood            string
	Difficulty      int
	DifficultyRated bool
	ProjectID       *string
	CreatedAt       time.Time
}

type Subtask struct {
	ID          string
	TaskID      string
	Name        string
	Done        bool
	CompletedAt *time.Time
	Position    int
}

type Project struct {
	ID          string
	Name        string
	Description string
	Deadline    *time.Time
	Done        bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

type Habit struct {
	ID            string
	Name          string
	Frequency     string
	Streak        int
	LastCompleted *time.Time
	Mood          string
	CreatedAt     time.Time
}

type Tool struct {
	ID          string
	Name        string
	Type        string
	UnlockLevel int
	HeightDelta float64
	LeafDelta   int
	HealthDelta int
	BeautyDelta int
	Style       string
	Used        bool
	CreatedAt   time.Time
}

type Reward struct {
	ID          string
	Name        string
	Kind        string
	Rarity      string
	HeightDelta float64
	LeafDelta   int
	HealthDelta int
	BeautyDelta int
	Style       string
	Used        bool
	CreatedAt   time.Time
}

type TreeState struct {
	HeightMeters   float64
	Leaves         int
	Health         int
	Beauty         int
	Decorations    []string
	CompletedTasks int
	Points         int
	Level          int
	LeafStyle      string
	BarkTexture    string
	Lighting       string
	SpecialEffects []string
	LastReset      time.Time
}

type TreeSnapshot struct {
	ID      int64
	TakenAt time.Time
	State   TreeState
}

type TaskListFilter struct {
	Done      *bool
	ProjectID string
	Limit     int
	Offset    int
}

type ToolListFilter struct {
	Used  *bool
	Limit int
}

type RewardListFilter struct {
	Used  *bool
	Limit int
}
