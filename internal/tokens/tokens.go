// Package tokens looks up the ERC-20 balances held by an account.
package tokens

import (
	"context"

	"github.com/rxtech-lab/settlement-desk/internal/types"
)

// BalanceProvider lists the non-zero token balances of owner.
type BalanceProvider interface {
	Balances(ctx context.Context, owner string) ([]types.TokenBalance, error)
}
