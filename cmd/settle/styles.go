package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/settlement-desk/internal/address"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/shopspring/decimal"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// SectionStyle for the pending and other headings.
	SectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)

	// NoticeStyle for confirmations.
	NoticeStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for wizard field labels.
	LabelStyle = lipgloss.NewStyle().Faint(false)
)

// FormatAmount renders an amount with its token, e.g. "12.5 0x1f98…F984".
func FormatAmount(amount decimal.Decimal, token string) string {
	if token == "" {
		return amount.String()
	}

	return amount.String() + " " + address.Format(token)
}

// FormatStatus renders a status, marking pending trades.
func FormatStatus(status types.TradeStatus) string {
	if status.IsPending() {
		return status.String() + " ●"
	}

	return status.String()
}
