package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, notes, deadline, estimate_minutes, actual_minutes, done, completed_at,
			priority, mood, difficulty, difficulty_rated, project_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Notes, mustTime(in.Deadline), in.EstimateMinutes, nullInt(in.ActualMinutes),
		boolInt(in.Done), nullTime(in.CompletedAt), in.Priority, in.Mood, in.Difficulty,
		boolInt(in.DifficultyRated), nullString(in.ProjectID), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, notes = ?, deadline = ?, estimate_minutes = ?, actual_minutes = ?, done = ?,
			completed_at = ?, priority = ?, mood = ?, difficulty = ?, difficulty_rated = ?, project_id = ?
		WHERE id = ?`,
		in.Name, in.Notes, mustTime(in.Deadline), in.EstimateMinutes, nullInt(in.ActualMinutes),
		boolInt(in.Done), nullTime(in.CompletedAt), in.Priority, in.Mood, in.Difficulty,
		boolInt(in.DifficultyRated), nullString(in.ProjectID), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := taskSelect
	args := make([]any, 0, 3)
	clauses := make([]string, 0, 2)
	if filter.Done != nil {
		clauses = append(clauses, `done = ?`)
		args = append(args, boolInt(*filter.Done))
	}
	if filter.ProjectID != "" {
		clauses = append(clauses, `project_id = ?`)
		args = append(args, filter.ProjectID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

const taskSelect = `SELECT id, name, notes, deadline, estimate_minutes, actual_minutes, done, completed_at,
	priority, mood, difficulty, difficulty_rated, project_id, created_at FROM tasks`

func (r *SQLiteRepository) CreateSubtask(ctx context.Context, in Subtask) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subtasks (id, task_id, name, done, completed_at, position)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.TaskID, in.Name, boolInt(in.Done), nullTime(in.CompletedAt), in.Position,
	)
	return err
}

func (r *SQLiteRepository) GetSubtask(ctx context.Context, id string) (Subtask, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, task_id, name, done, completed_at, position FROM subtasks WHERE id = ?`, id)
	st, err := scanSubtask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subtask{}, ErrNotFound
		}
		return Subtask{}, err
	}
	return st, nil
}

func (r *SQLiteRepository) UpdateSubtask(ctx context.Context, in Subtask) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subtasks SET name = ?, done = ?, completed_at = ?, position = ? WHERE id = ?`,
		in.Name, boolInt(in.Done), nullTime(in.CompletedAt), in.Position, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, done, completed_at, position
		FROM subtasks WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Subtask, 0)
	for rows.Next() {
		st, scanErr := scanSubtask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, in Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, deadline, done, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Description, nullTime(in.Deadline), boolInt(in.Done),
		nullTime(in.CompletedAt), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, deadline, done, completed_at, created_at
		FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, in Project) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, description = ?, deadline = ?, done = ?, completed_at = ?
		WHERE id = ?`,
		in.Name, in.Description, nullTime(in.Deadline), boolInt(in.Done), nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteProject relies on the ON DELETE SET NULL reference from tasks:
// owned tasks survive with a cleared project reference.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, deadline, done, completed_at, created_at
		FROM projects ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		p, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateHabit(ctx context.Context, in Habit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, name, frequency, streak, last_completed, mood, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Frequency, in.Streak, nullTime(in.LastCompleted), in.Mood, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, id string) (Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, frequency, streak, last_completed, mood, created_at
		FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Habit{}, ErrNotFound
		}
		return Habit{}, err
	}
	return h, nil
}

func (r *SQLiteRepository) UpdateHabit(ctx context.Context, in Habit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits SET name = ?, frequency = ?, streak = ?, last_completed = ?, mood = ?
		WHERE id = ?`,
		in.Name, in.Frequency, in.Streak, nullTime(in.LastCompleted), in.Mood, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListHabits(ctx context.Context) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, frequency, streak, last_completed, mood, created_at
		FROM habits ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Habit, 0)
	for rows.Next() {
		h, scanErr := scanHabit(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTool(ctx context.Context, in Tool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tools (id, name, type, unlock_level, height_delta, leaf_delta, health_delta,
			beauty_delta, style, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Type, in.UnlockLevel, in.HeightDelta, in.LeafDelta, in.HealthDelta,
		in.BeautyDelta, in.Style, boolInt(in.Used), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTool(ctx context.Context, id string) (Tool, error) {
	row := r.db.QueryRowContext(ctx, toolSelect+` WHERE id = ?`, id)
	tool, err := scanTool(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tool{}, ErrNotFound
		}
		return Tool{}, err
	}
	return tool, nil
}

func (r *SQLiteRepository) UpdateTool(ctx context.Context, in Tool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tools SET name = ?, type = ?, unlock_level = ?, height_delta = ?, leaf_delta = ?,
			health_delta = ?, beauty_delta = ?, style = ?, used = ?
		WHERE id = ?`,
		in.Name, in.Type, in.UnlockLevel, in.HeightDelta, in.LeafDelta, in.HealthDelta,
		in.BeautyDelta, in.Style, boolInt(in.Used), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTools(ctx context.Context, filter ToolListFilter) ([]Tool, error) {
	query := toolSelect
	args := make([]any, 0, 2)
	if filter.Used != nil {
		query += ` WHERE used = ?`
		args = append(args, boolInt(*filter.Used))
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, 0)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tool, 0)
	for rows.Next() {
		tool, scanErr := scanTool(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, tool)
	}
	return out, rows.Err()
}

const toolSelect = `SELECT id, name, type, unlock_level, height_delta, leaf_delta, health_delta,
	beauty_delta, style, used, created_at FROM tools`

func (r *SQLiteRepository) CreateReward(ctx context.Context, in Reward) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rewards (id, name, kind, rarity, height_delta, leaf_delta, health_delta,
			beauty_delta, style, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Kind, in.Rarity, in.HeightDelta, in.LeafDelta, in.HealthDelta,
		in.BeautyDelta, in.Style, boolInt(in.Used), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetReward(ctx context.Context, id string) (Reward, error) {
	row := r.db.QueryRowContext(ctx, rewardSelect+` WHERE id = ?`, id)
	reward, err := scanReward(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reward{}, ErrNotFound
		}
		return Reward{}, err
	}
	return reward, nil
}

func (r *SQLiteRepository) UpdateReward(ctx context.Context, in Reward) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rewards SET name = ?, kind = ?, rarity = ?, height_delta = ?, leaf_delta = ?,
			health_delta = ?, beauty_delta = ?, style = ?, used = ?
		WHERE id = ?`,
		in.Name, in.Kind, in.Rarity, in.HeightDelta, in.LeafDelta, in.HealthDelta,
		in.BeautyDelta, in.Style, boolInt(in.Used), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListRewards(ctx context.Context, filter RewardListFilter) ([]Reward, error) {
	query := rewardSelect
	args := make([]any, 0, 2)
	if filter.Used != nil {
		query += ` WHERE used = ?`
		args = append(args, boolInt(*filter.Used))
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, 0)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reward, 0)
	for rows.Next() {
		reward, scanErr := scanReward(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, reward)
	}
	return out, rows.Err()
}

const rewardSelect = `SELECT id, name, kind, rarity, height_delta, leaf_delta, health_delta,
	beauty_delta, style, used, created_at FROM rewards`

func (r *SQLiteRepository) GetTreeState(ctx context.Context) (TreeState, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT height_meters, leaves, health, beauty, decorations, completed_tasks, points, level,
			leaf_style, bark_texture, lighting, special_effects, last_reset
		FROM tree_state WHERE id = 1`)

	var out TreeState
	var decorations, effects, lastReset string
	err := row.Scan(&out.HeightMeters, &out.Leaves, &out.Health, &out.Beauty, &decorations,
		&out.CompletedTasks, &out.Points, &out.Level, &out.LeafStyle, &out.BarkTexture,
		&out.Lighting, &effects, &lastReset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TreeState{}, ErrNotFound
		}
		return TreeState{}, err
	}
	out.Decorations = decodeStringList(decorations)
	out.SpecialEffects = decodeStringList(effects)
	out.LastReset, err = parseRequiredTime(lastReset)
	if err != nil {
		return TreeState{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) SaveTreeState(ctx context.Context, in TreeState) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tree_state (id, height_meters, leaves, health, beauty, decorations,
			completed_tasks, points, level, leaf_style, bark_texture, lighting, special_effects, last_reset)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			height_meters = excluded.height_meters,
			leaves = excluded.leaves,
			health = excluded.health,
			beauty = excluded.beauty,
			decorations = excluded.decorations,
			completed_tasks = excluded.completed_tasks,
			points = excluded.points,
			level = excluded.level,
			leaf_style = excluded.leaf_style,
			bark_texture = excluded.bark_texture,
			lighting = excluded.lighting,
			special_effects = excluded.special_effects,
			last_reset = excluded.last_reset`,
		in.HeightMeters, in.Leaves, in.Health, in.Beauty, encodeStringList(in.Decorations),
		in.CompletedTasks, in.Points, in.Level, in.LeafStyle, in.BarkTexture, in.Lighting,
		encodeStringList(in.SpecialEffects), mustTime(in.LastReset),
	)
	return err
}

func (r *SQLiteRepository) AppendTreeSnapshot(ctx context.Context, in TreeSnapshot) error {
	payload, err := json.Marshal(snapshotPayload{
		HeightMeters:   in.State.HeightMeters,
		Leaves:         in.State.Leaves,
		Health:         in.State.Health,
		Beauty:         in.State.Beauty,
		Decorations:    in.State.Decorations,
		CompletedTasks: in.State.CompletedTasks,
		Points:         in.State.Points,
		Level:          in.State.Level,
		LeafStyle:      in.State.LeafStyle,
		BarkTexture:    in.State.BarkTexture,
		Lighting:       in.State.Lighting,
		SpecialEffects: in.State.SpecialEffects,
		LastReset:      in.State.LastReset.Format(sqliteTimeLayout),
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tree_history (taken_at, state_json) VALUES (?, ?)`,
		mustTime(in.TakenAt), string(payload),
	)
	return err
}

// ListTreeSnapshots skips rows whose payload no longer parses: history
// is convenience state, not the source of truth.
func (r *SQLiteRepository) ListTreeSnapshots(ctx context.Context) ([]TreeSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, taken_at, state_json FROM tree_history ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TreeSnapshot, 0)
	for rows.Next() {
		var id int64
		var takenAt, stateJSON string
		if scanErr := rows.Scan(&id, &takenAt, &stateJSON); scanErr != nil {
			return nil, scanErr
		}
		taken, timeErr := parseRequiredTime(takenAt)
		if timeErr != nil {
			continue
		}
		var payload snapshotPayload
		if jsonErr := json.Unmarshal([]byte(stateJSON), &payload); jsonErr != nil {
			continue
		}
		lastReset, _ := time.Parse(sqliteTimeLayout, payload.LastReset)
		out = append(out, TreeSnapshot{
			ID:      id,
			TakenAt: taken,
			State: TreeState{
				HeightMeters:   payload.HeightMeters,
				Leaves:         payload.Leaves,
				Health:         payload.Health,
				Beauty:         payload.Beauty,
				Decorations:    payload.Decorations,
				CompletedTasks: payload.CompletedTasks,
				Points:         payload.Points,
				Level:          payload.Level,
				LeafStyle:      payload.LeafStyle,
				BarkTexture:    payload.BarkTexture,
				Lighting:       payload.Lighting,
				SpecialEffects: payload.SpecialEffects,
				LastReset:      lastReset,
			},
		})
	}
	return out, rows.Err()
}

type snapshotPayload struct {
	HeightMeters   float64  `json:"height_meters"`
	Leaves         int      `json:"leaves"`
	Health         int      `json:"health"`
	Beauty         int      `json:"beauty"`
	Decorations    []string `json:"decorations"`
	CompletedTasks int      `json:"completed_tasks"`
	Points         int      `json:"points"`
	Level          int      `json:"level"`
	LeafStyle      string   `json:"leaf_style"`
	BarkTexture    string   `json:"bark_texture"`
	Lighting       string   `json:"lighting"`
	SpecialEffects []string `json:"special_effects"`
	LastReset      string   `json:"last_reset"`
}

func (r *SQLiteRepository) GetAppState(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetAppState(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var deadline, created string
	var actual sql.NullInt64
	var done, rated int
	var completed sql.NullString
	var projectID sql.NullString
	if err := s.Scan(&out.ID, &out.Name, &out.Notes, &deadline, &out.EstimateMinutes, &actual,
		&done, &completed, &out.Priority, &out.Mood, &out.Difficulty, &rated, &projectID, &created); err != nil {
		return Task{}, err
	}
	deadlineAt, err := parseRequiredTime(deadline)
	if err != nil {
		return Task{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Deadline = deadlineAt
	out.CompletedAt = completedAt
	out.CreatedAt = createdAt
	out.Done = done == 1
	out.DifficultyRated = rated == 1
	if actual.Valid {
		v := int(actual.Int64)
		out.ActualMinutes = &v
	}
	if projectID.Valid {
		v := projectID.String
		out.ProjectID = &v
	}
	return out, nil
}

func scanSubtask(s scanner) (Subtask, error) {
	var out Subtask
	var done int
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.TaskID, &out.Name, &done, &completed, &out.Position); err != nil {
		return Subtask{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Subtask{}, err
	}
	out.Done = done == 1
	out.CompletedAt = completedAt
	return out, nil
}

func scanProject(s scanner) (Project, error) {
	var out Project
	var deadline, completed sql.NullString
	var done int
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Description, &deadline, &done, &completed, &created); err != nil {
		return Project{}, err
	}
	deadlineAt, err := parseNullableTime(deadline)
	if err != nil {
		return Project{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Project{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Project{}, err
	}
	out.Deadline = deadlineAt
	out.Done = done == 1
	out.CompletedAt = completedAt
	out.CreatedAt = createdAt
	return out, nil
}

func scanHabit(s scanner) (Habit, error) {
	var out Habit
	var last sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Frequency, &out.Streak, &last, &out.Mood, &created); err != nil {
		return Habit{}, err
	}
	lastCompleted, err := parseNullableTime(last)
	if err != nil {
		return Habit{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Habit{}, err
	}
	out.LastCompleted = lastCompleted
	out.CreatedAt = createdAt
	return out, nil
}

func scanTool(s scanner) (Tool, error) {
	var out Tool
	var used int
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Type, &out.UnlockLevel, &out.HeightDelta,
		&out.LeafDelta, &out.HealthDelta, &out.BeautyDelta, &out.Style, &used, &created); err != nil {
		return Tool{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Tool{}, err
	}
	out.Used = used == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanReward(s scanner) (Reward, error) {
	var out Reward
	var used int
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Kind, &out.Rarity, &out.HeightDelta,
		&out.LeafDelta, &out.HealthDelta, &out.BeautyDelta, &out.Style, &used, &created); err != nil {
		return Reward{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Reward{}, err
	}
	out.Used = used == 1
	out.CreatedAt = createdAt
	return out, nil
}

// decodeStringList tolerates corrupt payloads by returning an empty
// list: stored lists are cache-like convenience state.
func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseRequiredTime(value string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", value, err)
	}
	return t, nil
}

func parseNullableTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseRequiredTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// checkRowsAffected maps an update or delete that touched no rows to
// ErrNotFound.
func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func applyPagination(args *[]any, limit, offset int) string {
	out := ""
	if limit > 0 {
		out += ` LIMIT ?`
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			out += ` LIMIT -1`
		}
		out += ` OFFSET ?`
		*args = append(*args, offset)
	}
	return out
}
