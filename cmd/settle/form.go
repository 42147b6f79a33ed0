package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/internal/wizard"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
)

// formAction tells the parent model what the form wants after an update.
type formAction int

const (
	formNone formAction = iota
	formCancel
	formSubmit
)

// FormModel renders the create-settlement wizard. Inputs are view state
// only: every keystroke is written through to the engine's answers, and
// inputs are rebuilt from those answers whenever the step changes.
type FormModel struct {
	engine     *wizard.Engine
	inputs     []textinput.Model
	focus      int
	err        error
	balances   []types.TokenBalance
	balanceErr error
	tokenPick  int
	submitting bool
}

// NewFormModel starts a wizard on its first step.
func NewFormModel() (FormModel, error) {
	engine, err := wizard.NewEngine(wizard.DefaultSteps())
	if err != nil {
		return FormModel{}, err
	}

	f := FormModel{engine: engine}
	f.loadStep()

	return f, nil
}

// loadStep rebuilds the inputs for the current step.
func (f *FormModel) loadStep() {
	step := f.engine.Current()
	answers := f.engine.Answers()

	f.inputs = make([]textinput.Model, len(step.Fields))
	for i, spec := range step.Fields {
		f.inputs[i] = NewFieldInput(spec, answers.Get(spec.Field))
	}

	f.err = nil
	f.setFocus(0)
}

func (f *FormModel) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}

	for j := range f.inputs {
		f.inputs[j].Blur()
	}

	f.focus = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Update handles one message and reports whether the user cancelled or
// finished the wizard.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd, formAction) {
	if f.submitting {
		return f, nil, formNone
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			if f.engine.IsFirst() {
				return f, nil, formCancel
			}

			f.engine.Back()
			f.loadStep()

			return f, textinput.Blink, formNone

		case "enter":
			if f.engine.IsLast() {
				if err := f.engine.Current().Validate(f.engine.Answers()); err != nil {
					f.err = err
					return f, nil, formNone
				}

				f.err = nil
				f.submitting = true

				return f, nil, formSubmit
			}

			if _, err := f.engine.Advance(); err != nil {
				f.err = err
				return f, nil, formNone
			}

			f.loadStep()

			return f, textinput.Blink, formNone

		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, formNone

		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, formNone

		case "ctrl+t":
			f.pickToken()
			return f, nil, formNone
		}
	}

	if len(f.inputs) == 0 {
		return f, nil, formNone
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)

	spec := f.engine.Current().Fields[f.focus]
	f.engine.UpdateFields(types.PatchFor(spec.Field, strings.TrimSpace(f.inputs[f.focus].Value())))

	return f, cmd, formNone
}

// pickToken cycles the seller token address through the account's
// balances.
func (f *FormModel) pickToken() {
	if len(f.balances) == 0 {
		return
	}

	for i, spec := range f.engine.Current().Fields {
		if spec.Field != types.FieldSellerTokenAddress {
			continue
		}

		token := f.balances[f.tokenPick%len(f.balances)]
		f.tokenPick++

		f.inputs[i].SetValue(token.Address)
		f.engine.UpdateFields(types.PatchFor(spec.Field, token.Address))
		f.setFocus(i)

		return
	}
}

// Failed records a submission error and re-enables the form.
func (f *FormModel) Failed(err error) {
	f.submitting = false
	f.err = err
}

// Answers returns the engine's accumulated answers.
func (f FormModel) Answers() types.WizardAnswers {
	return f.engine.Answers()
}

func (f FormModel) showsBalances() bool {
	for _, spec := range f.engine.Current().Fields {
		if spec.Field == types.FieldSellerTokenAddress {
			return true
		}
	}

	return false
}

// errorText turns missing-field errors into the step's labels.
func (f FormModel) errorText() string {
	missing := errors.MissingFields(f.err)
	if len(missing) == 0 {
		return fmt.Sprintf("Error: %v", f.err)
	}

	labels := make([]string, 0, len(missing))

	for _, name := range missing {
		label := name
		for _, spec := range f.engine.Current().Fields {
			if string(spec.Field) == name {
				label = spec.Label
			}
		}

		labels = append(labels, label)
	}

	return "Please fill in: " + strings.Join(labels, ", ")
}

// View renders the current step.
func (f FormModel) View() string {
	var s strings.Builder

	step := f.engine.Current()

	s.WriteString(TitleStyle.Render(fmt.Sprintf("New Settlement · Step %d of %d", f.engine.Index()+1, f.engine.Len())))
	s.WriteString("\n")
	s.WriteString(SectionStyle.Render(step.Title))
	s.WriteString("\n\n")

	for i, spec := range step.Fields {
		s.WriteString(LabelStyle.Render(spec.Label))
		s.WriteString("\n")
		s.WriteString(f.inputs[i].View())
		s.WriteString("\n\n")
	}

	if f.showsBalances() {
		switch {
		case len(f.balances) > 0:
			s.WriteString("Your tokens (ctrl+t to use):\n")
			s.WriteString(BalanceHints(f.balances))
			s.WriteString("\n\n")
		case f.balanceErr != nil:
			s.WriteString(HelpStyle.Render("Token balances unavailable"))
			s.WriteString("\n\n")
		}
	}

	if f.err != nil {
		s.WriteString(ErrorStyle.Render(f.errorText()))
		s.WriteString("\n\n")
	}

	if f.submitting {
		s.WriteString("Submitting...\n\n")
	}

	s.WriteString(HelpStyle.Render(f.help()))

	return s.String()
}

// help hides Back on the first step and labels the last step Finish.
func (f FormModel) help() string {
	parts := make([]string, 0, 3)

	if f.engine.IsFirst() {
		parts = append(parts, "esc: Cancel")
	} else {
		parts = append(parts, "esc: Back")
	}

	if f.engine.IsLast() {
		parts = append(parts, "enter: Finish")
	} else {
		parts = append(parts, "enter: Next")
	}

	if len(f.inputs) > 1 {
		parts = append(parts, "tab: next field")
	}

	return strings.Join(parts, " | ")
}
