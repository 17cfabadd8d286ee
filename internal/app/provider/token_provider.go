package provider

import (
	"context"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

type explorerTokenProber struct {
	explorer      port.ExplorerClient
	maxConcurrent int
	logger        port.Logger
}

// NewExplorerTokenProber creates a TokenBalanceProber that issues one explorer
// tokenbalance call per contract, at most maxConcurrent at a time.
func NewExplorerTokenProber(explorer port.ExplorerClient, maxConcurrent int, logger port.Logger) port.TokenBalanceProber {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &explorerTokenProber{explorer: explorer, maxConcurrent: maxConcurrent, logger: logger}
}

// TokenBalances probes every token. Per-token failures land in the result item.
// The returned error is non-nil only when ctx was cancelled.
func (p *explorerTokenProber) TokenBalances(ctx context.Context, address string, tokens []entity.TokenInfo) ([]entity.BalanceResultItem, error) {
	results := make([]entity.BalanceResultItem, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)

	for i, token := range tokens {
		i, token := i, token
		results[i] = entity.BalanceResultItem{Token: token}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Error = err
				return nil
			}
			balance, err := p.explorer.TokenBalance(gctx, token.Address, address)
			results[i].Balance = balance
			results[i].Error = err
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Debug("Explorer token probe finished", "address", address, "tokens", len(tokens))
	return results, ctx.Err()
}
