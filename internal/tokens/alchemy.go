package tokens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/settlement-desk/internal/address"
	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DisplayPlaces is the number of decimal places balances are rounded to.
const DisplayPlaces = 2

// AlchemyConfig configures an AlchemyClient.
type AlchemyConfig struct {
	// Endpoint is the JSON-RPC URL, e.g. https://eth-sepolia.g.alchemy.com/v2
	Endpoint string
	// APIKey is appended to Endpoint as a path segment when set.
	APIKey     string
	Timeout    time.Duration
	RetryCount int
}

// AlchemyClient implements BalanceProvider with the Alchemy token API.
type AlchemyClient struct {
	client *resty.Client
	path   string
	logger *logger.Logger
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse[T any] struct {
	Result T         `json:"result"`
	Error  *rpcError `json:"error"`
}

type tokenBalancesResult struct {
	Address       string `json:"address"`
	TokenBalances []struct {
		ContractAddress string `json:"contractAddress"`
		TokenBalance    string `json:"tokenBalance"`
	} `json:"tokenBalances"`
}

type tokenMetadataResult struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals *int32 `json:"decimals"`
	Logo     string `json:"logo"`
}

// NewAlchemyClient returns a client for cfg.Endpoint.
func NewAlchemyClient(cfg AlchemyConfig, log *logger.Logger) (*AlchemyClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "token endpoint is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	path := ""
	if cfg.APIKey != "" {
		path = "/" + cfg.APIKey
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &AlchemyClient{
		client: client,
		path:   path,
		logger: log,
	}, nil
}

// Balances implements BalanceProvider. Zero balances are dropped and the
// rest are scaled by the token decimals and rounded to DisplayPlaces.
func (c *AlchemyClient) Balances(ctx context.Context, owner string) ([]types.TokenBalance, error) {
	if !address.IsValid(owner) {
		return nil, errors.Newf(errors.ErrCodeInvalidAddress, "invalid owner address %q", owner)
	}

	var balances tokenBalancesResult
	if err := call(ctx, c, "alchemy_getTokenBalances", []any{owner, "erc20"}, &balances); err != nil {
		return nil, err
	}

	result := make([]types.TokenBalance, 0, len(balances.TokenBalances))

	for _, tb := range balances.TokenBalances {
		raw := common.HexToHash(tb.TokenBalance).Big()
		if raw.Sign() == 0 {
			continue
		}

		var meta tokenMetadataResult
		if err := call(ctx, c, "alchemy_getTokenMetadata", []any{tb.ContractAddress}, &meta); err != nil {
			return nil, err
		}

		var decimals int32
		if meta.Decimals != nil {
			decimals = *meta.Decimals
		}

		contract, err := address.Checksum(tb.ContractAddress)
		if err != nil {
			contract = tb.ContractAddress
		}

		result = append(result, types.TokenBalance{
			Name:     meta.Name,
			Symbol:   meta.Symbol,
			Balance:  decimal.NewFromBigInt(raw, -decimals).Round(DisplayPlaces),
			Decimals: decimals,
			Logo:     meta.Logo,
			Address:  contract,
		})
	}

	c.logger.Debug("Fetched token balances", zap.String("owner", owner), zap.Int("count", len(result)))

	return result, nil
}

// call posts one JSON-RPC request and decodes its result into out.
func call[T any](ctx context.Context, c *AlchemyClient, method string, params []any, out *T) error {
	var resp rpcResponse[T]

	r, err := c.client.R().
		SetContext(ctx).
		SetBody(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}).
		SetResult(&resp).
		Post(c.path)
	if err != nil {
		c.logger.Error("Token API request failed", zap.String("method", method), zap.Error(err))

		return errors.Wrapf(errors.ErrCodeBalanceFetchFailed, err, "%s request failed", method)
	}

	if r.IsError() {
		return errors.Newf(errors.ErrCodeBalanceFetchFailed, "%s returned %s", method, r.Status())
	}

	if resp.Error != nil {
		return errors.Wrapf(errors.ErrCodeBalanceFetchFailed,
			fmt.Errorf("rpc error %d: %s", resp.Error.Code, resp.Error.Message), "%s failed", method)
	}

	*out = resp.Result

	return nil
}
