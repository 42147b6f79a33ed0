package datasource

import (
	"os"
	"time"

	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedTrade is the YAML shape of a trade in a seed file.
type seedTrade struct {
	ID           string    `yaml:"id"`
	Counterparty string    `yaml:"counterparty"`
	Creator      string    `yaml:"creator"`
	TokenToSell  string    `yaml:"token_to_sell"`
	AmountToSell string    `yaml:"amount_to_sell"`
	TokenToBuy   string    `yaml:"token_to_buy"`
	AmountToBuy  string    `yaml:"amount_to_buy"`
	Status       string    `yaml:"status"`
	CreatedAt    time.Time `yaml:"created_at"`
	ExpiresAt    time.Time `yaml:"expires_at"`
}

type seedFile struct {
	Trades []seedTrade `yaml:"trades"`
}

// LoadSeedFile reads demo trades from a YAML file of the form
//
//	trades:
//	  - id: "1"
//	    counterparty: "0x..."
//	    amount_to_sell: "10"
//	    status: Pending
func LoadSeedFile(path string) ([]types.TradeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidArgument, err, "failed to read seed file %s", path)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidArgument, err, "failed to parse seed file %s", path)
	}

	trades := make([]types.TradeRecord, 0, len(file.Trades))

	for i, st := range file.Trades {
		if st.ID == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidArgument, "seed trade #%d has no id", i+1)
		}

		sell, err := parseSeedAmount(st.AmountToSell)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidAmount, err, "seed trade %s: amount_to_sell", st.ID)
		}

		buy, err := parseSeedAmount(st.AmountToBuy)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidAmount, err, "seed trade %s: amount_to_buy", st.ID)
		}

		createdAt := st.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		trades = append(trades, types.TradeRecord{
			ID:           st.ID,
			Counterparty: st.Counterparty,
			Creator:      st.Creator,
			TokenToSell:  st.TokenToSell,
			AmountToSell: sell,
			TokenToBuy:   st.TokenToBuy,
			AmountToBuy:  buy,
			Status:       types.ParseTradeStatus(st.Status),
			CreatedAt:    createdAt,
			ExpiresAt:    st.ExpiresAt,
		})
	}

	return trades, nil
}

func parseSeedAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(raw)
}
