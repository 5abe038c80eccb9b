package pipeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEnhancementNotNeeded indicates the document already meets the
	// quality gate: its overall score is at or above the threshold, or
	// no issue of medium or high severity exists. This is a terminal
	// validation failure, never retried.
	ErrEnhancementNotNeeded = errors.New("document does not need enhancement")

	// ErrAlreadyExecuted indicates Execute was called twice on the same
	// pipeline instance.
	ErrAlreadyExecuted = errors.New("pipeline already executed")
)

// StageError records a stage failure with its origin and time. Stage
// failures are permanent for the run: there is no automatic retry at
// this layer.
type StageError struct {
	Stage Stage     `json:"stage"`
	Msg   string    `json:"message"`
	Time  time.Time `json:"time"`

	err error
}

func newStageError(stage Stage, err error) *StageError {
	return &StageError{
		Stage: stage,
		Msg:   err.Error(),
		Time:  time.Now(),
		err:   err,
	}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %s", e.Stage, e.Msg)
}

func (e *StageError) Unwrap() error {
	return e.err
}
