package submission

import (
	"context"
	stderrors "errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/mocks"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	origin       = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	counterparty = "0x2306dA564868c47bb2C0123A25943cD54e6e8e2F"
	uniToken     = "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"
	linkToken    = "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
)

type SubmissionTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	writer  *mocks.MockTradeWriter
	service *Service
	now     time.Time
}

func TestSubmissionSuite(t *testing.T) {
	suite.Run(t, new(SubmissionTestSuite))
}

func (suite *SubmissionTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.writer = mocks.NewMockTradeWriter(suite.ctrl)
	suite.now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	suite.service = NewService(suite.writer, time.UTC, logger.NewNopLogger(),
		WithClock(func() time.Time { return suite.now }),
		WithIDGenerator(func() string { return "trade-1" }),
	)
}

func (suite *SubmissionTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func validAnswers() types.WizardAnswers {
	return types.WizardAnswers{
		BuyerAddress:       counterparty,
		SellerTokenAddress: uniToken,
		SellerTokenAmount:  "12.5",
		BuyerTokenAddress:  linkToken,
		BuyerTokenAmount:   "3",
		DatePeriod:         "2026-10-20",
		TimePeriod:         "17:30",
	}
}

func (suite *SubmissionTestSuite) TestSubmitPersistsPendingTrade() {
	var saved types.TradeRecord

	suite.writer.EXPECT().SaveTrade(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, trade types.TradeRecord) error {
			saved = trade
			return nil
		},
	)

	trade, err := suite.service.Submit(context.Background(), validAnswers(), origin)
	suite.Require().NoError(err)

	suite.Equal(saved, trade)
	suite.Equal("trade-1", trade.ID)
	suite.Equal(types.TradeStatusPending, trade.Status)
	suite.Equal(counterparty, trade.Counterparty)
	suite.Equal(origin, trade.Creator)
	suite.Equal(uniToken, trade.TokenToSell)
	suite.Equal(linkToken, trade.TokenToBuy)
	suite.True(decimal.RequireFromString("12.5").Equal(trade.AmountToSell))
	suite.True(decimal.NewFromInt(3).Equal(trade.AmountToBuy))
	suite.Equal(suite.now, trade.CreatedAt)
	suite.Equal(time.Date(2026, 10, 20, 17, 30, 0, 0, time.UTC), trade.ExpiresAt)
}

func (suite *SubmissionTestSuite) TestSubmitChecksumsLowercaseAddresses() {
	suite.writer.EXPECT().SaveTrade(gomock.Any(), gomock.Any()).Return(nil)

	answers := validAnswers()
	answers.BuyerAddress = "0x2306da564868c47bb2c0123a25943cd54e6e8e2f"

	trade, err := suite.service.Submit(context.Background(), answers, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	suite.Require().NoError(err)
	suite.Equal(counterparty, trade.Counterparty)
	suite.Equal(origin, trade.Creator)
}

func (suite *SubmissionTestSuite) TestExpiryUsesConfiguredLocation() {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	suite.Require().NoError(err)

	service := NewService(suite.writer, tokyo, logger.NewNopLogger(),
		WithClock(func() time.Time { return suite.now }),
	)

	trade, err := service.Build(validAnswers(), origin)
	suite.Require().NoError(err)
	suite.Equal(time.Date(2026, 10, 20, 8, 30, 0, 0, time.UTC), trade.ExpiresAt)
	suite.NotEmpty(trade.ID)
}

func (suite *SubmissionTestSuite) TestValidationFailures() {
	tests := []struct {
		name   string
		mutate func(a *types.WizardAnswers)
		origin string
		code   errors.ErrorCode
	}{
		{
			name:   "invalid origin",
			mutate: func(a *types.WizardAnswers) {},
			origin: "not-an-address",
			code:   errors.ErrCodeInvalidAddress,
		},
		{
			name:   "missing amount",
			mutate: func(a *types.WizardAnswers) { a.BuyerTokenAmount = "" },
			origin: origin,
			code:   errors.ErrCodeMissingField,
		},
		{
			name:   "bad counterparty",
			mutate: func(a *types.WizardAnswers) { a.BuyerAddress = "0x1234" },
			origin: origin,
			code:   errors.ErrCodeInvalidAddress,
		},
		{
			name:   "counterparty is origin",
			mutate: func(a *types.WizardAnswers) { a.BuyerAddress = origin },
			origin: origin,
			code:   errors.ErrCodeInvalidAddress,
		},
		{
			name:   "same token on both sides",
			mutate: func(a *types.WizardAnswers) { a.BuyerTokenAddress = uniToken },
			origin: origin,
			code:   errors.ErrCodeInvalidAddress,
		},
		{
			name:   "non numeric amount",
			mutate: func(a *types.WizardAnswers) { a.SellerTokenAmount = "ten" },
			origin: origin,
			code:   errors.ErrCodeInvalidAmount,
		},
		{
			name:   "zero amount",
			mutate: func(a *types.WizardAnswers) { a.SellerTokenAmount = "0" },
			origin: origin,
			code:   errors.ErrCodeInvalidAmount,
		},
		{
			name:   "negative amount",
			mutate: func(a *types.WizardAnswers) { a.BuyerTokenAmount = "-1" },
			origin: origin,
			code:   errors.ErrCodeInvalidAmount,
		},
		{
			name:   "malformed date",
			mutate: func(a *types.WizardAnswers) { a.DatePeriod = "20/10/2026" },
			origin: origin,
			code:   errors.ErrCodeInvalidExpiry,
		},
		{
			name:   "expiry in the past",
			mutate: func(a *types.WizardAnswers) { a.DatePeriod = "2026-10-18" },
			origin: origin,
			code:   errors.ErrCodeInvalidExpiry,
		},
		{
			name:   "expiry equals now",
			mutate: func(a *types.WizardAnswers) { a.DatePeriod, a.TimePeriod = "2026-10-19", "08:00" },
			origin: origin,
			code:   errors.ErrCodeInvalidExpiry,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			answers := validAnswers()
			tt.mutate(&answers)

			_, err := suite.service.Submit(context.Background(), answers, tt.origin)
			suite.Require().Error(err)
			suite.Equal(tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func (suite *SubmissionTestSuite) TestMissingFieldsAreListed() {
	answers := validAnswers()
	answers.DatePeriod = ""
	answers.TimePeriod = ""

	_, err := suite.service.Build(answers, origin)
	suite.ElementsMatch([]string{"datePeriod", "timePeriod"}, errors.MissingFields(err))
}

func (suite *SubmissionTestSuite) TestWriterFailureIsWrapped() {
	cause := stderrors.New("disk full")
	suite.writer.EXPECT().SaveTrade(gomock.Any(), gomock.Any()).Return(cause)

	_, err := suite.service.Submit(context.Background(), validAnswers(), origin)
	suite.True(errors.HasCode(err, errors.ErrCodeSubmissionFailed))
	suite.ErrorIs(err, cause)
}
