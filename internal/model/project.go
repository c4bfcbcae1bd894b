package model

import (
	"errors"
	"strings"
	"time"
)

// Project groups tasks by weak reference: deleting a project clears the
// reference on its tasks instead of cascading.
type Project struct {
	ID          string
	Name        string
	Description string
	Deadline    *time.Time
	Done        bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	if p.CreatedAt.IsZero() {
		return errors.New("model: project created_at is required")
	}
	if p.Done && p.CompletedAt == nil {
		return errors.New("model: completed_at is required when project is done")
	}
	return nil
}
