package stacks

import (
	"context"

	"github.com/ArgyPorgy/stx-names-indexer/internal/ratelimit"
)

// ProviderHiro is the rate limiter provider name for the Hiro API
const ProviderHiro = "hiro"

// rateLimitedClient paces requests to the underlying client through the
// rate-limiting proxy
type rateLimitedClient struct {
	inner Client
	proxy ratelimit.Proxy
}

// NewRateLimitedClient wraps a client with rate limiting. A nil proxy
// passes requests straight through.
func NewRateLimitedClient(inner Client, proxy ratelimit.Proxy) Client {
	return &rateLimitedClient{
		inner: inner,
		proxy: proxy,
	}
}

func (c *rateLimitedClient) GetContractTransactions(ctx context.Context, contract string, limit int) ([]AddressTransaction, error) {
	return ratelimit.Request(ctx, c.proxy, ProviderHiro, func(ctx context.Context) ([]AddressTransaction, error) {
		return c.inner.GetContractTransactions(ctx, contract, limit)
	})
}
