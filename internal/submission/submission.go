// Package submission turns completed wizard answers into pending trades.
package submission

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rxtech-lab/settlement-desk/internal/address"
	"github.com/rxtech-lab/settlement-desk/internal/datasource"
	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Submitter finalizes a wizard session.
type Submitter interface {
	// Submit validates answers, creates a pending trade proposed by origin
	// and persists it.
	Submit(ctx context.Context, answers types.WizardAnswers, origin string) (types.TradeRecord, error)
}

// Service is the default Submitter backed by a TradeWriter.
type Service struct {
	writer   datasource.TradeWriter
	validate *validator.Validate
	location *time.Location
	now      func() time.Time
	newID    func() string
	logger   *logger.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, for expiry checks and creation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid trade id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService returns a Service writing to writer. Expiry dates are read in
// location; nil means UTC.
func NewService(writer datasource.TradeWriter, location *time.Location, log *logger.Logger, opts ...Option) *Service {
	if location == nil {
		location = time.UTC
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	s := &Service{
		writer:   writer,
		validate: validate,
		location: location,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		logger:   log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit implements Submitter.
func (s *Service) Submit(ctx context.Context, answers types.WizardAnswers, origin string) (types.TradeRecord, error) {
	trade, err := s.Build(answers, origin)
	if err != nil {
		s.logger.Warn("Rejected settlement", zap.Error(err))

		return types.TradeRecord{}, err
	}

	if err := s.writer.SaveTrade(ctx, trade); err != nil {
		s.logger.Error("Failed to save settlement", zap.String("id", trade.ID), zap.Error(err))

		return types.TradeRecord{}, errors.Wrap(errors.ErrCodeSubmissionFailed, "failed to save settlement", err)
	}

	s.logger.Info("Settlement added",
		zap.String("id", trade.ID),
		zap.String("creator", trade.Creator),
		zap.String("counterparty", trade.Counterparty),
		zap.Time("expires_at", trade.ExpiresAt),
	)

	return trade, nil
}

// Build validates answers and packages them as a pending trade without
// persisting it.
func (s *Service) Build(answers types.WizardAnswers, origin string) (types.TradeRecord, error) {
	creator, err := address.Checksum(origin)
	if err != nil {
		return types.TradeRecord{}, errors.Wrap(errors.ErrCodeInvalidAddress, "invalid originating address", err)
	}

	if err := s.validate.Struct(answers); err != nil {
		return types.TradeRecord{}, translate(err)
	}

	// eth_addr passed, so these cannot fail
	counterparty, _ := address.Checksum(answers.BuyerAddress)
	sellToken, _ := address.Checksum(answers.SellerTokenAddress)
	buyToken, _ := address.Checksum(answers.BuyerTokenAddress)

	if strings.EqualFold(counterparty, creator) {
		return types.TradeRecord{}, errors.New(errors.ErrCodeInvalidAddress, "counterparty must differ from the originating address")
	}

	if strings.EqualFold(sellToken, buyToken) {
		return types.TradeRecord{}, errors.New(errors.ErrCodeInvalidAddress, "seller and buyer tokens must differ")
	}

	sellAmount, err := positiveAmount(string(types.FieldSellerTokenAmount), answers.SellerTokenAmount)
	if err != nil {
		return types.TradeRecord{}, err
	}

	buyAmount, err := positiveAmount(string(types.FieldBuyerTokenAmount), answers.BuyerTokenAmount)
	if err != nil {
		return types.TradeRecord{}, err
	}

	expiresAt, err := s.expiry(answers)
	if err != nil {
		return types.TradeRecord{}, err
	}

	return types.TradeRecord{
		ID:           s.newID(),
		Counterparty: counterparty,
		Creator:      creator,
		TokenToSell:  sellToken,
		AmountToSell: sellAmount,
		TokenToBuy:   buyToken,
		AmountToBuy:  buyAmount,
		Status:       types.TradeStatusPending,
		CreatedAt:    s.now().UTC(),
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) expiry(answers types.WizardAnswers) (time.Time, error) {
	expiresAt, err := time.ParseInLocation(
		types.DatePeriodLayout+" "+types.TimePeriodLayout,
		answers.DatePeriod+" "+answers.TimePeriod,
		s.location,
	)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidExpiry, "invalid expiry", err)
	}

	if !expiresAt.After(s.now()) {
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidExpiry, "expiry %s is not in the future", expiresAt.Format(time.RFC3339))
	}

	return expiresAt.UTC(), nil
}

func positiveAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeInvalidAmount, err, "%s is not a number", field)
	}

	if !amount.IsPositive() {
		return decimal.Zero, errors.Newf(errors.ErrCodeInvalidAmount, "%s must be greater than zero", field)
	}

	return amount, nil
}

// translate maps the first validator failure onto an error code.
func translate(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidArgument, "invalid settlement", err)
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}

	if len(missing) > 0 {
		return errors.NewFieldError("settlement", missing)
	}

	fe := validationErrs[0]

	switch fe.Tag() {
	case "eth_addr":
		return errors.Newf(errors.ErrCodeInvalidAddress, "%s is not a valid address", fe.Field())
	case "numeric":
		return errors.Newf(errors.ErrCodeInvalidAmount, "%s is not a number", fe.Field())
	case "datetime":
		return errors.Newf(errors.ErrCodeInvalidExpiry, "%s must match %s", fe.Field(), fe.Param())
	}

	return errors.Wrap(errors.ErrCodeInvalidArgument, "invalid settlement", err)
}
