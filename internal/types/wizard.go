package types

import "github.com/moznion/go-optional"

// Field names one entry of WizardAnswers.
type Field string

const (
	FieldBuyerAddress       Field = "buyerAddress"
	FieldSellerTokenAddress Field = "sellerTokenAddress"
	FieldSellerTokenAmount  Field = "sellerTokenAmount"
	FieldBuyerTokenAddress  Field = "buyerTokenAddress"
	FieldBuyerTokenAmount   Field = "buyerTokenAmount"
	FieldDatePeriod         Field = "datePeriod"
	FieldTimePeriod         Field = "timePeriod"
)

// Fields lists every answer field in wizard order.
func Fields() []Field {
	return []Field{
		FieldBuyerAddress,
		FieldSellerTokenAddress,
		FieldSellerTokenAmount,
		FieldBuyerTokenAddress,
		FieldBuyerTokenAmount,
		FieldDatePeriod,
		FieldTimePeriod,
	}
}

// Expiry layouts for DatePeriod and TimePeriod.
const (
	DatePeriodLayout = "2006-01-02"
	TimePeriodLayout = "15:04"
)

// WizardAnswers accumulates the parameters of a new settlement.
// Every field is empty until the user fills it in.
type WizardAnswers struct {
	BuyerAddress       string `json:"buyerAddress" validate:"required,eth_addr"`
	SellerTokenAddress string `json:"sellerTokenAddress" validate:"required,eth_addr"`
	SellerTokenAmount  string `json:"sellerTokenAmount" validate:"required,numeric"`
	BuyerTokenAddress  string `json:"buyerTokenAddress" validate:"required,eth_addr"`
	BuyerTokenAmount   string `json:"buyerTokenAmount" validate:"required,numeric"`
	DatePeriod         string `json:"datePeriod" validate:"required,datetime=2006-01-02"`
	TimePeriod         string `json:"timePeriod" validate:"required,datetime=15:04"`
}

// Get returns the value of f, or "" for an unknown field.
func (a WizardAnswers) Get(f Field) string {
	switch f {
	case FieldBuyerAddress:
		return a.BuyerAddress
	case FieldSellerTokenAddress:
		return a.SellerTokenAddress
	case FieldSellerTokenAmount:
		return a.SellerTokenAmount
	case FieldBuyerTokenAddress:
		return a.BuyerTokenAddress
	case FieldBuyerTokenAmount:
		return a.BuyerTokenAmount
	case FieldDatePeriod:
		return a.DatePeriod
	case FieldTimePeriod:
		return a.TimePeriod
	}

	return ""
}

// Merge applies p on top of a. Fields set in p win, the rest are kept.
func (a WizardAnswers) Merge(p AnswersPatch) WizardAnswers {
	a.BuyerAddress = takeOr(p.BuyerAddress, a.BuyerAddress)
	a.SellerTokenAddress = takeOr(p.SellerTokenAddress, a.SellerTokenAddress)
	a.SellerTokenAmount = takeOr(p.SellerTokenAmount, a.SellerTokenAmount)
	a.BuyerTokenAddress = takeOr(p.BuyerTokenAddress, a.BuyerTokenAddress)
	a.BuyerTokenAmount = takeOr(p.BuyerTokenAmount, a.BuyerTokenAmount)
	a.DatePeriod = takeOr(p.DatePeriod, a.DatePeriod)
	a.TimePeriod = takeOr(p.TimePeriod, a.TimePeriod)

	return a
}

// AnswersPatch is a partial WizardAnswers. A None field leaves the
// current answer untouched; Some("") clears it.
type AnswersPatch struct {
	BuyerAddress       optional.Option[string]
	SellerTokenAddress optional.Option[string]
	SellerTokenAmount  optional.Option[string]
	BuyerTokenAddress  optional.Option[string]
	BuyerTokenAmount   optional.Option[string]
	DatePeriod         optional.Option[string]
	TimePeriod         optional.Option[string]
}

// PatchFor builds a patch that sets a single field.
func PatchFor(f Field, value string) AnswersPatch {
	var p AnswersPatch

	v := optional.Some(value)

	switch f {
	case FieldBuyerAddress:
		p.BuyerAddress = v
	case FieldSellerTokenAddress:
		p.SellerTokenAddress = v
	case FieldSellerTokenAmount:
		p.SellerTokenAmount = v
	case FieldBuyerTokenAddress:
		p.BuyerTokenAddress = v
	case FieldBuyerTokenAmount:
		p.BuyerTokenAmount = v
	case FieldDatePeriod:
		p.DatePeriod = v
	case FieldTimePeriod:
		p.TimePeriod = v
	}

	return p
}

// IsEmpty reports whether the patch sets no field at all.
func (p AnswersPatch) IsEmpty() bool {
	return p.BuyerAddress.IsNone() &&
		p.SellerTokenAddress.IsNone() &&
		p.SellerTokenAmount.IsNone() &&
		p.BuyerTokenAddress.IsNone() &&
		p.BuyerTokenAmount.IsNone() &&
		p.DatePeriod.IsNone() &&
		p.TimePeriod.IsNone()
}

func takeOr(o optional.Option[string], fallback string) string {
	if o.IsSome() {
		return o.Unwrap()
	}

	return fallback
}
