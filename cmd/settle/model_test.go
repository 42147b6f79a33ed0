package main

import (
	"bytes"
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/mocks"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAccount  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	counterparty = "0x2306dA564868c47bb2C0123A25943cD54e6e8e2F"
	uniToken     = "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"
	linkToken    = "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
)

func testTrade(id string, status types.TradeStatus) types.TradeRecord {
	return types.TradeRecord{
		ID:           id,
		Counterparty: counterparty,
		Creator:      testAccount,
		TokenToSell:  uniToken,
		AmountToSell: decimal.NewFromInt(10),
		TokenToBuy:   linkToken,
		AmountToBuy:  decimal.RequireFromString("2.5"),
		Status:       status,
		CreatedAt:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestModel(t *testing.T, records []types.TradeRecord) (Model, *mocks.MockSubmitter) {
	ctrl := gomock.NewController(t)

	source := mocks.NewMockTradeSource(ctrl)
	source.EXPECT().FetchTrades(gomock.Any(), 9).Return(records, nil).AnyTimes()

	submitter := mocks.NewMockSubmitter(ctrl)

	return NewModel(Deps{
		Source:     source,
		Submitter:  submitter,
		Account:    testAccount,
		FetchLimit: 9,
		PageSize:   2,
	}), submitter
}

func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(2*time.Second))
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}

	return m
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t, nil)

	assert.Equal(t, StateList, m.state)
	assert.True(t, m.loading)
	assert.Equal(t, GroupPending, m.focus)
	assert.NotNil(t, m.groups.Pending)
	assert.NotNil(t, m.groups.Other)
}

func TestListShowsBothGroups(t *testing.T) {
	m, _ := newTestModel(t, []types.TradeRecord{
		testTrade("trade-1", types.TradeStatusPending),
		testTrade("trade-2", types.TradeStatusSettled),
		testTrade("trade-3", types.TradeStatusPending),
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Action Required")) &&
			bytes.Contains(bts, []byte("Other Settlements")) &&
			bytes.Contains(bts, []byte("trade-2")) &&
			bytes.Contains(bts, []byte("0x5aAe…eAed"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestNoPendingTradesHeading(t *testing.T) {
	m, _ := newTestModel(t, []types.TradeRecord{testTrade("done", types.TradeStatusSettled)})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))
	waitFor(t, tm, "No pending trades")

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestTradesLoadedPartitions(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, TradesLoadedMsg{Trades: []types.TradeRecord{
		testTrade("1", types.TradeStatusPending),
		testTrade("2", types.TradeStatusSettled),
		testTrade("3", types.TradeStatusPending),
		testTrade("4", ""),
	}})

	assert.False(t, m.loading)
	require.Len(t, m.groups.Pending, 2)
	assert.Equal(t, "1", m.groups.Pending[0].ID)
	assert.Equal(t, "3", m.groups.Pending[1].ID)
	require.Len(t, m.groups.Other, 2)
	assert.Equal(t, "4", m.groups.Other[1].ID)
}

func TestFetchFailureIsShown(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, TradesFailedMsg{Err: errors.New(errors.ErrCodeStoreUnavailable, "database locked")})

	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "database locked")
}

func TestPagingSaturates(t *testing.T) {
	m, _ := newTestModel(t, nil)

	records := make([]types.TradeRecord, 0, 5)
	for i := 1; i <= 5; i++ {
		records = append(records, testTrade(fmt.Sprintf("p%d", i), types.TradeStatusPending))
	}

	m = send(m, TradesLoadedMsg{Trades: records})
	assert.Equal(t, 0, m.pages[GroupPending])

	m = send(m, key('n'))
	assert.Equal(t, 1, m.pages[GroupPending])

	m = send(m, key('n'), key('n'), key('n'))
	assert.Equal(t, 2, m.pages[GroupPending])
	assert.Contains(t, m.View(), "Page 3/3")

	m = send(m, key('p'))
	assert.Equal(t, 1, m.pages[GroupPending])

	m = send(m, key('p'), key('p'))
	assert.Equal(t, 0, m.pages[GroupPending])

	// the other group is empty and has nowhere to go
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, key('n'))
	assert.Equal(t, GroupOther, m.focus)
	assert.Equal(t, 0, m.pages[GroupOther])
}

func TestRefetchClampsPage(t *testing.T) {
	m, _ := newTestModel(t, nil)

	records := make([]types.TradeRecord, 0, 5)
	for i := 1; i <= 5; i++ {
		records = append(records, testTrade(fmt.Sprintf("p%d", i), types.TradeStatusPending))
	}

	m = send(m, TradesLoadedMsg{Trades: records}, key('n'), key('n'))
	assert.Equal(t, 2, m.pages[GroupPending])

	m = send(m, TradesLoadedMsg{Trades: records[:2]})
	assert.Equal(t, 0, m.pages[GroupPending])
}

func TestSearchFiltersLive(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, TradesLoadedMsg{Trades: []types.TradeRecord{
		testTrade("alpha", types.TradeStatusPending),
		testTrade("beta", types.TradeStatusPending),
		testTrade("gamma", types.TradeStatusSettled),
	}})

	m = send(m, key('/'))
	assert.Equal(t, StateSearch, m.state)

	m = send(m, key('B'), key('E'), key('T'))
	assert.Equal(t, "BET", m.query)
	require.Len(t, m.groups.Pending, 1)
	assert.Equal(t, "beta", m.groups.Pending[0].ID)
	assert.Empty(t, m.groups.Other)
	// the header counts every fetched trade, not just the matches
	assert.Contains(t, m.View(), "3 transactions")

	// a refetch keeps the filter applied
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, TradesLoadedMsg{Trades: []types.TradeRecord{
		testTrade("alpha", types.TradeStatusPending),
		testTrade("beta", types.TradeStatusPending),
		testTrade("betamax", types.TradeStatusRejected),
	}})
	assert.Equal(t, StateList, m.state)
	assert.Len(t, m.groups.Pending, 1)
	assert.Len(t, m.groups.Other, 1)
	assert.Contains(t, m.View(), `Filter: "BET"`)

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.query)
	assert.Len(t, m.groups.Pending, 2)
}

func TestWizardNavigation(t *testing.T) {
	m, _ := newTestModel(t, nil)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))
	waitFor(t, tm, "No pending trades")

	tm.Send(key('c'))
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Counter Party Address")) &&
			bytes.Contains(bts, []byte("esc: Cancel"))
	}, teatest.WithDuration(2*time.Second))

	// an empty required field blocks the step
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Please fill in: Buyer Address")

	tm.Type(counterparty)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Seller Token Details")) &&
			bytes.Contains(bts, []byte("esc: Back"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	waitFor(t, tm, "Step 1 of 4")

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestWizardKeepsAnswersAcrossSteps(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, key('c'))
	require.Equal(t, StateForm, m.state)

	for _, r := range counterparty {
		m = send(m, key(r))
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.form.engine.Index())

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 0, m.form.engine.Index())
	assert.Equal(t, counterparty, m.form.inputs[0].Value())
	assert.Equal(t, counterparty, m.form.Answers().BuyerAddress)

	// esc on the first step leaves the wizard
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.state)
}

func TestWizardSubmit(t *testing.T) {
	m, submitter := newTestModel(t, nil)

	want := types.WizardAnswers{
		BuyerAddress:       counterparty,
		SellerTokenAddress: uniToken,
		SellerTokenAmount:  "10",
		BuyerTokenAddress:  linkToken,
		BuyerTokenAmount:   "2.5",
		DatePeriod:         "2030-01-31",
		TimePeriod:         "12:00",
	}

	submitter.EXPECT().Submit(gomock.Any(), want, testAccount).Return(testTrade("new", types.TradeStatusPending), nil)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))
	waitFor(t, tm, "No pending trades")

	tm.Send(key('c'))
	waitFor(t, tm, "Counter Party Address")
	tm.Type(want.BuyerAddress)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, "Seller Token Details")
	tm.Type(want.SellerTokenAddress)
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type(want.SellerTokenAmount)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, "Buyer Token Details")
	tm.Type(want.BuyerTokenAddress)
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type(want.BuyerTokenAmount)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Time Period")) &&
			bytes.Contains(bts, []byte("enter: Finish"))
	}, teatest.WithDuration(2*time.Second))
	tm.Type(want.DatePeriod)
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type(want.TimePeriod)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, SuccessNotice)

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestSubmitFailureStaysOnLastStep(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, key('c'))
	for i := 0; i < 3; i++ {
		m.form.engine.Next()
	}
	m.form.loadStep()
	m.form.submitting = true

	m = send(m, SubmitFailedMsg{Err: errors.New(errors.ErrCodeInvalidExpiry, "expiry is not in the future")})

	assert.Equal(t, StateForm, m.state)
	assert.False(t, m.form.submitting)
	assert.True(t, m.form.engine.IsLast())
	assert.Contains(t, m.View(), "expiry is not in the future")
}

func TestBalancesFillSellerToken(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, key('c'))
	m.form.engine.Next()
	m.form.loadStep()

	m = send(m, BalancesLoadedMsg{Balances: []types.TokenBalance{
		{Symbol: "UNI", Address: uniToken, Balance: decimal.RequireFromString("0.77")},
		{Symbol: "LINK", Address: linkToken, Balance: decimal.RequireFromString("1.23")},
	}})
	assert.Contains(t, m.View(), "UNI 0.77")

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, uniToken, m.form.Answers().SellerTokenAddress)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, linkToken, m.form.Answers().SellerTokenAddress)
	assert.Equal(t, linkToken, m.form.inputs[0].Value())
}

func TestQuitBehavior(t *testing.T) {
	t.Run("ctrl+c quits from any state", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	})

	t.Run("q quits from the list", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

		waitFor(t, tm, "Settlement Desk")

		tm.Send(key('q'))

		tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	})

	t.Run("q is typed in the wizard", func(t *testing.T) {
		m, _ := newTestModel(t, nil)

		m = send(m, key('c'), key('q'))
		assert.Equal(t, StateForm, m.state)
		assert.Equal(t, "q", m.form.Answers().BuyerAddress)
	})
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestViewHelpers(t *testing.T) {
	assert.Equal(t, "Action Required", PendingHeading(2))
	assert.Equal(t, "No pending trades", PendingHeading(0))
	assert.Equal(t, "Page 1/1", PageIndicator(0, 0))
	assert.Equal(t, "Page 2/3", PageIndicator(1, 3))
	assert.Equal(t, "User: 0x5aAe…eAed  ·  1 transaction", UserHeader(testAccount, 1))
	assert.Equal(t, "10 0x1f98…F984", FormatAmount(decimal.NewFromInt(10), uniToken))
	assert.Equal(t, "Unknown", FormatStatus(""))
}

func TestShortIDKeepsCharactersWhole(t *testing.T) {
	assert.Equal(t, "trade-1", shortID("trade-1"))
	assert.Equal(t, "3f2b9c1e", shortID("3f2b9c1e-aaaa-bbbb-cccc-1234567890ab"))
	assert.Equal(t, "ñandú-tr", shortID("ñandú-trade-7"))
	assert.True(t, utf8.ValidString(shortID("ééééééééééé")))
	assert.Equal(t, "éééééééé", shortID("ééééééééééé"))
}
