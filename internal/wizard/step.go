package wizard

import (
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
)

// InputKind tells the presentation layer which input widget a field needs.
type InputKind string

const (
	InputText InputKind = "text"
	InputDate InputKind = "date"
	InputTime InputKind = "time"
)

// FieldSpec binds one answer field to a labelled input.
type FieldSpec struct {
	Field       types.Field
	Label       string
	Kind        InputKind
	Placeholder string
	Required    bool
}

// Step is an immutable wizard page. Steps never keep answers of their
// own; they read from and write to the engine's shared record.
type Step struct {
	Title  string
	Fields []FieldSpec
}

// Missing returns the required fields of s that are empty in answers.
func (s Step) Missing(answers types.WizardAnswers) []types.Field {
	var missing []types.Field

	for _, spec := range s.Fields {
		if spec.Required && answers.Get(spec.Field) == "" {
			missing = append(missing, spec.Field)
		}
	}

	return missing
}

// Validate fails with ErrCodeMissingField when a required field is empty.
func (s Step) Validate(answers types.WizardAnswers) error {
	missing := s.Missing(answers)
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for _, f := range missing {
		names = append(names, string(f))
	}

	return errors.NewFieldError(s.Title, names)
}

// DefaultSteps returns the four pages of the create-settlement flow.
func DefaultSteps() []Step {
	return []Step{
		{
			Title: "Counter Party Address",
			Fields: []FieldSpec{
				{Field: types.FieldBuyerAddress, Label: "Buyer Address", Kind: InputText, Placeholder: "0x...", Required: true},
			},
		},
		{
			Title: "Seller Token Details",
			Fields: []FieldSpec{
				{Field: types.FieldSellerTokenAddress, Label: "Seller Token Address", Kind: InputText, Placeholder: "0x...", Required: true},
				{Field: types.FieldSellerTokenAmount, Label: "Seller Token Amount", Kind: InputText, Placeholder: "0.0", Required: true},
			},
		},
		{
			Title: "Buyer Token Details",
			Fields: []FieldSpec{
				{Field: types.FieldBuyerTokenAddress, Label: "Buyer Token Address", Kind: InputText, Placeholder: "0x...", Required: true},
				{Field: types.FieldBuyerTokenAmount, Label: "Buyer Token Amount", Kind: InputText, Placeholder: "0.0", Required: true},
			},
		},
		{
			Title: "Time Period",
			Fields: []FieldSpec{
				{Field: types.FieldDatePeriod, Label: "Expiry Date", Kind: InputDate, Placeholder: types.DatePeriodLayout, Required: true},
				{Field: types.FieldTimePeriod, Label: "Expiry Time", Kind: InputTime, Placeholder: types.TimePeriodLayout, Required: true},
			},
		},
	}
}
