package provider

import (
	"context"
	"sort"
	"strings"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ExchangeProvider implements port.ExchangeProvider over an SDK backend bound
// to one credential pair.
type ExchangeProvider struct {
	exchange entity.ExchangeID
	backend  port.ExchangeBackend
}

func NewExchangeProvider(exchange entity.ExchangeID, backend port.ExchangeBackend) *ExchangeProvider {
	return &ExchangeProvider{exchange: exchange, backend: backend}
}

var _ port.ExchangeProvider = (*ExchangeProvider)(nil)

func (p *ExchangeProvider) Exchange() entity.ExchangeID { return p.exchange }

// TestConnection checks reachability, then performs an authenticated read.
func (p *ExchangeProvider) TestConnection(ctx context.Context) error {
	if err := p.backend.Ping(ctx); err != nil {
		return err
	}
	_, err := p.backend.Balances(ctx)
	return err
}

// FetchBalances returns positive totals with upper-case symbols, sorted by
// symbol. Lines for the same asset are summed.
func (p *ExchangeProvider) FetchBalances(ctx context.Context) ([]entity.Holding, error) {
	raw, err := p.backend.Balances(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(raw))
	for _, h := range raw {
		sym := strings.ToUpper(strings.TrimSpace(h.Symbol))
		if sym == "" {
			continue
		}
		totals[sym] = totals[sym].Add(h.Balance)
	}

	holdings := make([]entity.Holding, 0, len(totals))
	for sym, bal := range totals {
		if !bal.IsPositive() {
			continue
		}
		holdings = append(holdings, entity.Holding{Symbol: sym, Balance: bal})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings, nil
}
