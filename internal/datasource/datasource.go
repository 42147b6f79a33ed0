// Package datasource fetches and persists trade records.
package datasource

import (
	"context"

	"github.com/rxtech-lab/settlement-desk/internal/types"
)

// TradeSource loads trade records for the list views.
type TradeSource interface {
	// FetchTrades returns up to limit trades, newest first. A limit of
	// zero or less returns every trade.
	FetchTrades(ctx context.Context, limit int) ([]types.TradeRecord, error)
}

// TradeWriter persists newly submitted trades.
type TradeWriter interface {
	SaveTrade(ctx context.Context, trade types.TradeRecord) error
}

// TradeRepository is the full store used by the HTTP API.
type TradeRepository interface {
	TradeSource
	TradeWriter
	GetTrade(ctx context.Context, id string) (types.TradeRecord, error)
	UpdateStatus(ctx context.Context, id string, status types.TradeStatus) error
}
