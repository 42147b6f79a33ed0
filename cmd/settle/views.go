package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rxtech-lab/settlement-desk/internal/address"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/internal/wizard"
)

const shortIDWidth = 8

// NewTradeTable creates a table for one trade group.
func NewTradeTable(focused bool) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Counterparty", Width: 14},
		{Title: "Sell", Width: 24},
		{Title: "Buy", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Expires", Width: 17},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(focused),
		table.WithHeight(6),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// TradeRows renders trades as rows of the TUI table, with IDs shortened
// to fit the ID column.
func TradeRows(records []types.TradeRecord) []table.Row {
	return tradeRows(records, shortID)
}

// FullTradeRows renders trades with their complete IDs, as accepted by
// trades settle and trades reject.
func FullTradeRows(records []types.TradeRecord) []table.Row {
	return tradeRows(records, func(id string) string { return id })
}

func tradeRows(records []types.TradeRecord, formatID func(string) string) []table.Row {
	rows := make([]table.Row, 0, len(records))

	for _, trade := range records {
		expires := "-"
		if !trade.ExpiresAt.IsZero() {
			expires = trade.ExpiresAt.Format("2006-01-02 15:04")
		}

		rows = append(rows, table.Row{
			formatID(trade.ID),
			address.Format(trade.Counterparty),
			FormatAmount(trade.AmountToSell, trade.TokenToSell),
			FormatAmount(trade.AmountToBuy, trade.TokenToBuy),
			FormatStatus(trade.Status),
			expires,
		})
	}

	return rows
}

// shortID cuts id to eight cells without splitting a character.
func shortID(id string) string {
	return ansi.Truncate(id, shortIDWidth, "")
}

// NewSearchInput creates the search box.
func NewSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "address, token, id or status"
	ti.CharLimit = 64
	ti.Width = 50
	ti.Prompt = "/ "

	return ti
}

// NewFieldInput creates the text input for one wizard field, prefilled
// with value.
func NewFieldInput(spec wizard.FieldSpec, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = spec.Placeholder
	ti.Prompt = "> "
	ti.Width = 50

	switch spec.Kind {
	case wizard.InputDate:
		ti.CharLimit = len(types.DatePeriodLayout)
	case wizard.InputTime:
		ti.CharLimit = len(types.TimePeriodLayout)
	default:
		ti.CharLimit = 64
	}

	ti.SetValue(value)

	return ti
}

// UserHeader renders the formatted account address and transaction count.
func UserHeader(account string, count int) string {
	noun := "transactions"
	if count == 1 {
		noun = "transaction"
	}

	return fmt.Sprintf("User: %s  ·  %d %s", address.Format(account), count, noun)
}

// PendingHeading is "Action Required" when something awaits the user.
func PendingHeading(pending int) string {
	if pending == 0 {
		return "No pending trades"
	}

	return "Action Required"
}

// PageIndicator renders "Page 1/3"; an empty group shows page 1/1.
func PageIndicator(page, pages int) string {
	if pages == 0 {
		pages = 1
	}

	return fmt.Sprintf("Page %d/%d", page+1, pages)
}

// BalanceHints lists token balances as one line per token.
func BalanceHints(balances []types.TokenBalance) string {
	lines := make([]string, 0, len(balances))

	for _, b := range balances {
		lines = append(lines, fmt.Sprintf("  %s %s (%s)", b.Symbol, b.Balance.StringFixed(2), address.Format(b.Address)))
	}

	return strings.Join(lines, "\n")
}
