// Package trades splits trade lists into pending and settled groups and
// pages over them. Every function here is pure: callers re-run them after
// each fetch instead of caching results.
package trades

import (
	"strings"

	"github.com/rxtech-lab/settlement-desk/internal/types"
)

// Groups is the pending/other split of a trade list.
type Groups struct {
	// Pending holds trades awaiting action, in input order.
	Pending []types.TradeRecord
	// Other holds settled, rejected, expired and unclassified trades.
	Other []types.TradeRecord
}

// Total returns the number of trades across both groups.
func (g Groups) Total() int {
	return len(g.Pending) + len(g.Other)
}

// Partition splits trades by status, preserving relative order.
// Records with a missing or unknown status land in other.
func Partition(trades []types.TradeRecord) (pending, other []types.TradeRecord) {
	pending = make([]types.TradeRecord, 0, len(trades))
	other = make([]types.TradeRecord, 0, len(trades))

	for _, trade := range trades {
		if trade.Status.IsPending() {
			pending = append(pending, trade)
		} else {
			other = append(other, trade)
		}
	}

	return pending, other
}

// Group filters trades by query and partitions the result.
func Group(trades []types.TradeRecord, query string) Groups {
	pending, other := Partition(Filter(trades, query))

	return Groups{Pending: pending, Other: other}
}

// Filter keeps trades whose id, addresses, tokens or status contain query,
// ignoring case. An empty query returns trades unchanged.
func Filter(trades []types.TradeRecord, query string) []types.TradeRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return trades
	}

	matched := make([]types.TradeRecord, 0, len(trades))

	for _, trade := range trades {
		if matches(trade, query) {
			matched = append(matched, trade)
		}
	}

	return matched
}

func matches(trade types.TradeRecord, query string) bool {
	for _, candidate := range []string{
		trade.ID,
		trade.Counterparty,
		trade.Creator,
		trade.TokenToSell,
		trade.TokenToBuy,
		string(trade.Status),
	} {
		if strings.Contains(strings.ToLower(candidate), query) {
			return true
		}
	}

	return false
}
