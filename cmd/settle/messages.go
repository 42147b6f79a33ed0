package main

import "github.com/rxtech-lab/settlement-desk/internal/types"

// TradesLoadedMsg carries the result of a trade fetch.
type TradesLoadedMsg struct {
	Trades []types.TradeRecord
}

// TradesFailedMsg indicates the trade source could not be read.
type TradesFailedMsg struct {
	Err error
}

// SubmittedMsg signals that the wizard's trade was stored.
type SubmittedMsg struct {
	Trade types.TradeRecord
}

// SubmitFailedMsg carries a rejected or failed submission.
type SubmitFailedMsg struct {
	Err error
}

// BalancesLoadedMsg carries the account's token balances for the wizard.
type BalancesLoadedMsg struct {
	Balances []types.TokenBalance
	Err      error
}
