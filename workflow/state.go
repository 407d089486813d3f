package workflow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoAnswer reports a session that ended without an answer because the
// attempt budget ran out.
var ErrNoAnswer = errors.New("no answer: retries exhausted")

// Stage is a step of the control loop.
type Stage string

const (
	StagePlanning     Stage = "planning"
	StageSynthesizing Stage = "synthesizing"
	StageExecuting    Stage = "executing"
	StageFormatting   Stage = "formatting"
	StageDone         Stage = "done"
	StageAborted      Stage = "aborted"
)

// Terminal reports whether no further transition can happen from s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageAborted
}

// State is the record threaded through one question's session.
//
// UserQuery is fixed at creation. TaskPlan is written once by the planner.
// Code is overwritten by every synthesis. After an execution attempt
// exactly one of Error and Output is set. Iterations counts synthesis
// calls and never decreases.
type State struct {
	ID         string
	UserQuery  string
	TaskPlan   string
	Code       string
	Error      string
	Iterations int
	Output     any
	Answer     string
	Stage      Stage
}

// NewState starts a session for question.
func NewState(question string) *State {
	return &State{
		ID:        uuid.NewString(),
		UserQuery: question,
		Stage:     StagePlanning,
	}
}

// HasError reports whether the last execution failed.
func (s *State) HasError() bool { return s.Error != "" }

// HasOutput reports whether the last execution produced a result.
func (s *State) HasOutput() bool { return s.Output != nil }

// Answered reports whether the formatter produced an answer.
func (s *State) Answered() bool { return s.Stage == StageDone && s.Answer != "" }

// Err returns ErrNoAnswer, wrapped with the last execution error, when the
// session was aborted. Otherwise it returns nil.
func (s *State) Err() error {
	if s.Stage != StageAborted {
		return nil
	}
	if s.Error == "" {
		return ErrNoAnswer
	}
	return fmt.Errorf("%w after %d attempts: %s", ErrNoAnswer, s.Iterations, s.Error)
}
