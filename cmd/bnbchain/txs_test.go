package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rpcbinance "github.com/fystack/bnbchain-adapter/internal/rpc/binance"
	"github.com/fystack/bnbchain-adapter/pkg/binance"
)

// pagedClient serves fixed records, paged by the requested limit.
type pagedClient struct {
	records []binance.Tx
	offsets []int
	err     error
}

func (c *pagedClient) GetTransactions(_ context.Context, _ string, q rpcbinance.TxQuery) (*binance.TxPage, error) {
	c.offsets = append(c.offsets, q.Offset)
	if c.err != nil {
		return nil, c.err
	}
	start := min(q.Offset, len(c.records))
	end := min(start+q.Limit, len(c.records))
	return &binance.TxPage{Total: len(c.records), Tx: c.records[start:end]}, nil
}

func (c *pagedClient) GetFees(context.Context) ([]binance.FeeParam, error)          { return nil, nil }
func (c *pagedClient) GetTx(context.Context, string) (*rpcbinance.TxResult, error) { return nil, nil }
func (c *pagedClient) GetURL() string                                               { return "paged" }

func TestFetchAllReadsEveryPage(t *testing.T) {
	client := &pagedClient{}
	for i := 0; i < 5; i++ {
		client.records = append(client.records, binance.Tx{TxHash: fmt.Sprintf("H%d", i), TxAsset: "BNB"})
	}

	records, err := fetchAll(context.Background(), client, "bnb1a", rpcbinance.TxQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "H4", records[4].TxHash)
	assert.Equal(t, []int{0, 2, 4}, client.offsets)
}

func TestFetchAllStopsOnEmptyPage(t *testing.T) {
	client := &pagedClient{}

	records, err := fetchAll(context.Background(), client, "bnb1a", rpcbinance.TxQuery{Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, []int{0}, client.offsets)
}

func TestFetchAllReturnsClientError(t *testing.T) {
	client := &pagedClient{err: errors.New("boom")}

	_, err := fetchAll(context.Background(), client, "bnb1a", rpcbinance.TxQuery{Limit: 2})
	assert.EqualError(t, err, "boom")
}
