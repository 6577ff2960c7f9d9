package engine

import (
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
)

var (
	ErrInvalidConfig = errors.New("invalid game config")
	ErrInvalidState  = errors.New("invalid game state")
	ErrInvalidMove   = errors.New("invalid move")
	ErrAdvisorFault  = errors.New("advisor fault")
	ErrNotFound      = errors.New("not found")
)

// MoveError is a rule violation. Humans may retry with another input.
type MoveError struct {
	Action models.Action
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("invalid move %s: %s", e.Action, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return ErrInvalidMove
}

func moveErr(action models.Action, format string, args ...interface{}) error {
	return &MoveError{Action: action, Reason: fmt.Sprintf(format, args...)}
}
