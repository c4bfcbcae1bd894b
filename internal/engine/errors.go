package engine

import "errors"

var (
	// ErrNotFound signals a lookup miss; the operation is a no-op.
	ErrNotFound = errors.New("engine: not found")
	// ErrAlreadyUsed rejects reapplying a consumed tool or reward.
	ErrAlreadyUsed = errors.New("engine: already used")
	// ErrInvalidInput rejects an operation at the boundary; state is unchanged.
	ErrInvalidInput = errors.New("engine: invalid input")
	// ErrEmptyRewardTable indicates a broken static table. It should never
	// surface at runtime and is treated as an invariant violation.
	ErrEmptyRewardTable = errors.New("engine: reward table is empty")
)
