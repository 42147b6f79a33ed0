package types

import "github.com/shopspring/decimal"

// TokenBalance is a non-zero ERC-20 holding of an account, already scaled
// by the token's decimals.
type TokenBalance struct {
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Balance  decimal.Decimal `json:"balance"`
	Decimals int32           `json:"decimals"`
	Logo     string          `json:"logo,omitempty"`
	Address  string          `json:"address"`
}
