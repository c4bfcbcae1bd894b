package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidToolType = errors.New("model: invalid tool type")
	ErrToolUsed        = errors.New("model: tool already used")
)

type ToolType string

const (
	ToolWater      ToolType = "water"
	ToolFertilize  ToolType = "fertilize"
	ToolPrune      ToolType = "prune"
	ToolDecorate   ToolType = "decorate"
	ToolIlluminate ToolType = "illuminate"
	ToolCustomize  ToolType = "customize"
	ToolEnhance    ToolType = "enhance"
	ToolBuild      ToolType = "build"
)

func (t ToolType) IsValid() bool {
	switch t {
	case ToolWater, ToolFertilize, ToolPrune, ToolDecorate,
		ToolIlluminate, ToolCustomize, ToolEnhance, ToolBuild:
		return true
	default:
		return false
	}
}

// Tool is a consumable, level-gated item granted on task completion.
// Its effect applies to the tree exactly once; Used guards reapplication.
type Tool struct {
	ID          string
	Name        string
	Type        ToolType
	UnlockLevel int
	Effect      Effect
	Used        bool
}

func (t Tool) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: tool id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: tool name is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidToolType, t.Type)
	}
	if t.UnlockLevel < 1 {
		return errors.New("model: tool unlock_level must be at least 1")
	}
	return nil
}
