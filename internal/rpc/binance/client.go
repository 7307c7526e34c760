package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fystack/bnbchain-adapter/internal/rpc"
	"github.com/fystack/bnbchain-adapter/pkg/binance"
	"github.com/fystack/bnbchain-adapter/pkg/common/constant"
	"github.com/fystack/bnbchain-adapter/pkg/ratelimiter"
)

type Client struct {
	base *rpc.BaseClient
}

func NewBinanceClient(
	baseURL string,
	auth *rpc.AuthConfig,
	cfg rpc.ClientConfig,
	rl *ratelimiter.RateLimiter,
) *Client {
	return &Client{
		base: rpc.NewBaseClient(baseURL, auth, cfg, rl),
	}
}

func (c *Client) GetURL() string { return c.base.URL() }

func (c *Client) GetTransactions(
	ctx context.Context,
	address string,
	q TxQuery,
) (*binance.TxPage, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("address is empty")
	}

	params := url.Values{"address": {address}}
	if !q.StartTime.IsZero() {
		params.Set("startTime", strconv.FormatInt(q.StartTime.UnixMilli(), 10))
	}
	if !q.EndTime.IsZero() {
		params.Set("endTime", strconv.FormatInt(q.EndTime.UnixMilli(), 10))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(min(q.Limit, constant.MaxTxPageLimit)))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.TxType != "" {
		params.Set("txType", string(q.TxType))
	}
	if q.TxAsset != "" {
		params.Set("txAsset", q.TxAsset)
	}
	if q.Side != "" {
		params.Set("side", q.Side)
	}

	return getResponse[binance.TxPage](ctx, c, "/api/v1/transactions", params)
}

func (c *Client) GetFees(ctx context.Context) ([]binance.FeeParam, error) {
	fees, err := getResponse[[]binance.FeeParam](ctx, c, "/api/v1/fees", nil)
	if err != nil {
		return nil, err
	}
	return *fees, nil
}

func (c *Client) GetTx(ctx context.Context, hash string) (*TxResult, error) {
	hash = strings.TrimPrefix(strings.TrimSpace(hash), "0x")
	if hash == "" {
		return nil, errors.New("tx hash is empty")
	}
	result, err := getResponse[TxResult](ctx, c, "/api/v1/tx/"+url.PathEscape(strings.ToUpper(hash)), nil)
	if err != nil {
		return nil, err
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("tx %s failed with code %d: %s", result.Hash, result.Code, result.Log)
	}
	return result, nil
}

func getResponse[T any](
	ctx context.Context,
	client *Client,
	endpoint string,
	params url.Values,
) (*T, error) {
	raw, err := client.base.Get(ctx, endpoint, params)
	if err != nil {
		var httpErr *rpc.HTTPError
		if errors.As(err, &httpErr) {
			var apiErr APIError
			if json.Unmarshal([]byte(httpErr.Body), &apiErr) == nil && apiErr.Message != "" {
				return nil, fmt.Errorf("%s failed: %w", endpoint, &apiErr)
			}
		}
		return nil, fmt.Errorf("%s failed: %w", endpoint, err)
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return &result, nil
}
