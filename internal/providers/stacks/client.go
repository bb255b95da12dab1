// Package stacks wraps the Hiro Stacks blockchain API endpoints the poller
// needs to backfill contract-call transactions.
package stacks

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ArgyPorgy/stx-names-indexer/internal/adapter"
)

// FunctionArg is one decoded argument of a contract call
type FunctionArg struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Repr string `json:"repr"`
	Hex  string `json:"hex"`
}

// ContractCall describes the contract invocation inside a transaction
type ContractCall struct {
	ContractID   string        `json:"contract_id"`
	FunctionName string        `json:"function_name"`
	FunctionArgs []FunctionArg `json:"function_args"`
}

// AddressTransaction represents a transaction from the Hiro address-transactions API
type AddressTransaction struct {
	TxID          string        `json:"tx_id"`
	TxStatus      string        `json:"tx_status"`
	TxType        string        `json:"tx_type"`
	BlockHeight   uint64        `json:"block_height"`
	BurnBlockTime int64         `json:"burn_block_time"`
	SenderAddress string        `json:"sender_address"`
	ContractCall  *ContractCall `json:"contract_call,omitempty"`
}

// addressTransactionsResponse is the paginated envelope around results
type addressTransactionsResponse struct {
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
	Total   int                  `json:"total"`
	Results []AddressTransaction `json:"results"`
}

// Client defines an interface for Hiro Stacks API client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/stacks_client.go -package=mocks -mock_names=Client=MockStacksClient
type Client interface {
	// GetContractTransactions retrieves the most recent transactions touching
	// the given contract principal, newest first
	GetContractTransactions(ctx context.Context, contract string, limit int) ([]AddressTransaction, error)
}

// client is the concrete implementation of Client
type client struct {
	baseURL    string
	httpClient adapter.HTTPClient
}

// NewClient creates a new Hiro Stacks API client
func NewClient(baseURL string, httpClient adapter.HTTPClient) Client {
	return &client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// GetContractTransactions retrieves recent transactions for a contract principal
func (c *client) GetContractTransactions(ctx context.Context, contract string, limit int) ([]AddressTransaction, error) {
	endpoint := fmt.Sprintf("%s/extended/v1/address/%s/transactions?limit=%d",
		c.baseURL, url.PathEscape(contract), limit)

	var resp addressTransactionsResponse
	if err := c.httpClient.Get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to get transactions for %s: %w", contract, err)
	}

	return resp.Results, nil
}
