package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeStatus is the lifecycle state of a settlement.
// The zero value means the status is missing.
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "Pending"
	TradeStatusSettled  TradeStatus = "Settled"
	TradeStatusRejected TradeStatus = "Rejected"
	TradeStatusExpired  TradeStatus = "Expired"
)

// ParseTradeStatus maps s onto a known status, ignoring case.
// Unknown input yields the empty (missing) status.
func ParseTradeStatus(s string) TradeStatus {
	for _, status := range []TradeStatus{
		TradeStatusPending,
		TradeStatusSettled,
		TradeStatusRejected,
		TradeStatusExpired,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status
		}
	}

	return ""
}

// IsPending reports whether the trade still awaits counterparty action.
func (s TradeStatus) IsPending() bool {
	return s == TradeStatusPending
}

// IsKnown reports whether s is one of the four defined statuses.
func (s TradeStatus) IsKnown() bool {
	return ParseTradeStatus(string(s)) == s && s != ""
}

func (s TradeStatus) String() string {
	if s == "" {
		return "Unknown"
	}

	return string(s)
}

// TradeRecord is a proposed or executed token-for-token exchange.
// Records are produced by a TradeSource and never mutated by the UI.
type TradeRecord struct {
	ID string `json:"id" yaml:"id"`
	// Counterparty is the chain address of the other side of the trade.
	Counterparty string `json:"counterparty" yaml:"counterparty"`
	// Creator is the address that proposed the trade.
	Creator      string          `json:"creator" yaml:"creator"`
	TokenToSell  string          `json:"tokenToSell" yaml:"token_to_sell"`
	AmountToSell decimal.Decimal `json:"amountOfTokenToSell" yaml:"amount_to_sell"`
	TokenToBuy   string          `json:"tokenToBuy" yaml:"token_to_buy"`
	AmountToBuy  decimal.Decimal `json:"amountOfTokenToBuy" yaml:"amount_to_buy"`
	Status       TradeStatus     `json:"status" yaml:"status"`
	CreatedAt    time.Time       `json:"createdAt" yaml:"created_at"`
	// ExpiresAt is zero when the trade has no expiry.
	ExpiresAt time.Time `json:"expiresAt" yaml:"expires_at"`
}
