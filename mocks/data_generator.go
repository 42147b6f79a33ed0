package mocks

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/shopspring/decimal"
)

// TradeGenerator generates plausible trade records for tests and benchmarks.
type TradeGenerator struct {
	rng *rand.Rand
}

// NewTradeGenerator creates a new TradeGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewTradeGenerator(seed int64) *TradeGenerator {
	return &TradeGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how trades are generated.
type GeneratorConfig struct {
	// Creator is the account proposing every trade
	Creator string
	// StartTime is the creation time of the first trade
	StartTime time.Time
	// Interval is the duration between creation times
	Interval time.Duration
	// Count is the number of trades to generate
	Count int
	// PendingRatio is the share of trades left pending (0.0 to 1.0)
	PendingRatio float64
	// Tokens are the token contracts to trade between; at least two
	Tokens []string
	// MaxAmount bounds the whole-unit part of generated amounts
	MaxAmount int64
	// Lifetime is added to the creation time to get the expiry
	Lifetime time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Creator:      "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		StartTime:    time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:     time.Minute,
		Count:        1000,
		PendingRatio: 0.4,
		Tokens: []string{
			"0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984",
			"0x514910771AF9Ca656af840dff83E8264EcF986CA",
			"0x6B175474E89094C44Da98b954EedeAC495271d0F",
			"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		},
		MaxAmount: 10000,
		Lifetime:  72 * time.Hour,
	}
}

var otherStatuses = []types.TradeStatus{
	types.TradeStatusSettled,
	types.TradeStatusRejected,
	types.TradeStatusExpired,
}

// Generate creates trades with increasing creation times and ids
// "trade-00000", "trade-00001", ...
func (g *TradeGenerator) Generate(config GeneratorConfig) []types.TradeRecord {
	data := make([]types.TradeRecord, config.Count)
	createdAt := config.StartTime

	for i := 0; i < config.Count; i++ {
		sell := g.rng.Intn(len(config.Tokens))
		// pick a different token to buy
		buy := (sell + 1 + g.rng.Intn(len(config.Tokens)-1)) % len(config.Tokens)

		status := types.TradeStatusPending
		if g.rng.Float64() >= config.PendingRatio {
			status = otherStatuses[g.rng.Intn(len(otherStatuses))]
		}

		data[i] = types.TradeRecord{
			ID:           fmt.Sprintf("trade-%05d", i),
			Counterparty: g.address(),
			Creator:      config.Creator,
			TokenToSell:  config.Tokens[sell],
			AmountToSell: g.amount(config.MaxAmount),
			TokenToBuy:   config.Tokens[buy],
			AmountToBuy:  g.amount(config.MaxAmount),
			Status:       status,
			CreatedAt:    createdAt,
			ExpiresAt:    createdAt.Add(config.Lifetime),
		}

		createdAt = createdAt.Add(config.Interval)
	}

	return data
}

// Generate1K is a convenience function to generate 1,000 trades
// with default settings for benchmarking.
func Generate1K() []types.TradeRecord {
	gen := NewTradeGenerator(42) // Fixed seed for reproducibility
	return gen.Generate(DefaultConfig())
}

// address returns a random checksummed address.
func (g *TradeGenerator) address() string {
	var raw common.Address
	g.rng.Read(raw[:])

	return raw.Hex()
}

// amount returns a positive amount with up to four decimal places.
func (g *TradeGenerator) amount(maxAmount int64) decimal.Decimal {
	if maxAmount <= 0 {
		maxAmount = 1
	}

	units := g.rng.Int63n(maxAmount*10000) + 1

	return decimal.New(units, -4)
}
