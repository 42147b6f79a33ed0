// Package wizard sequences a fixed list of form steps over one shared
// answer record.
//
// The cursor moves one step at a time and saturates at both ends: Next on
// the last step and Back on the first step do nothing. Submission is not
// part of the engine; callers check IsLast and hand Answers to a submitter.
package wizard

import (
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
)

// Engine owns the step sequence, the cursor and the accumulated answers.
// It is not safe for concurrent use; each wizard session owns one.
type Engine struct {
	steps   []Step
	cursor  int
	answers types.WizardAnswers
}

// NewEngine returns an engine positioned on the first of steps.
func NewEngine(steps []Step) (*Engine, error) {
	if len(steps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "wizard needs at least one step")
	}

	return &Engine{
		steps:   append([]Step(nil), steps...),
		cursor:  0,
		answers: types.WizardAnswers{},
	}, nil
}

// Current returns the step under the cursor.
func (e *Engine) Current() Step {
	return e.steps[e.cursor]
}

// Index returns the cursor.
func (e *Engine) Index() int {
	return e.cursor
}

// Len returns the number of steps.
func (e *Engine) Len() int {
	return len(e.steps)
}

// Steps returns a copy of the step sequence.
func (e *Engine) Steps() []Step {
	return append([]Step(nil), e.steps...)
}

func (e *Engine) IsFirst() bool {
	return e.cursor == 0
}

func (e *Engine) IsLast() bool {
	return e.cursor == len(e.steps)-1
}

// Next moves forward one step and returns the new cursor.
// On the last step it returns the cursor unchanged and false.
func (e *Engine) Next() (int, bool) {
	if e.IsLast() {
		return e.cursor, false
	}

	e.cursor++

	return e.cursor, true
}

// Back moves back one step and returns the new cursor.
// On the first step it returns 0 and false.
func (e *Engine) Back() (int, bool) {
	if e.IsFirst() {
		return e.cursor, false
	}

	e.cursor--

	return e.cursor, true
}

// Advance validates the current step and, if it is complete, calls Next.
// It returns ErrCodeMissingField while required fields are empty.
func (e *Engine) Advance() (int, error) {
	if err := e.Current().Validate(e.answers); err != nil {
		return e.cursor, err
	}

	idx, _ := e.Next()

	return idx, nil
}

// UpdateFields merges patch into the answers, last write wins.
func (e *Engine) UpdateFields(patch types.AnswersPatch) {
	e.answers = e.answers.Merge(patch)
}

// Answers returns a snapshot of the accumulated answers.
func (e *Engine) Answers() types.WizardAnswers {
	return e.answers
}

// Complete reports whether every step's required fields are filled.
func (e *Engine) Complete() bool {
	for _, step := range e.steps {
		if len(step.Missing(e.answers)) > 0 {
			return false
		}
	}

	return true
}
