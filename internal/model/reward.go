package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRarity     = errors.New("model: invalid rarity")
	ErrInvalidRewardKind = errors.New("model: invalid reward kind")
	ErrRewardUsed        = errors.New("model: reward already used")
)

// Rarity orders reward tiers by increasing scarcity and effect magnitude.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityExquisite Rarity = "Exquisite"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityExquisite:
		return true
	default:
		return false
	}
}

// Order returns the scarcity rank, Common lowest.
func (r Rarity) Order() int {
	switch r {
	case RarityUncommon:
		return 1
	case RarityRare:
		return 2
	case RarityExquisite:
		return 3
	default:
		return 0
	}
}

type RewardKind string

const (
	RewardGrowth     RewardKind = "growth"
	RewardDecoration RewardKind = "decoration"
)

func (k RewardKind) IsValid() bool {
	switch k {
	case RewardGrowth, RewardDecoration:
		return true
	default:
		return false
	}
}

// Reward is a probabilistically drawn item granted on task completion:
// either a growth promoter or a decoration for the tree.
type Reward struct {
	ID     string
	Name   string
	Kind   RewardKind
	Rarity Rarity
	Effect Effect
	Used   bool
}

func (r Reward) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reward id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("model: reward name is required")
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRewardKind, r.Kind)
	}
	if !r.Rarity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRarity, r.Rarity)
	}
	return nil
}
