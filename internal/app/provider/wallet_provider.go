package provider

import (
	"fmt"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
)

// exchangeFactory implements port.ExchangeFactory from a table of backend
// builders and the exchange registry.
type exchangeFactory struct {
	builders  map[entity.ExchangeID]port.ExchangeBackendBuilder
	supported []entity.ExchangeInfo
}

// NewExchangeFactory creates a factory. Only exchanges present in both
// builders and supported can be constructed.
func NewExchangeFactory(builders map[entity.ExchangeID]port.ExchangeBackendBuilder, supported []entity.ExchangeInfo) port.ExchangeFactory {
	filtered := make([]entity.ExchangeInfo, 0, len(supported))
	for _, info := range supported {
		if _, ok := builders[info.ID]; ok {
			filtered = append(filtered, info)
		}
	}
	return &exchangeFactory{builders: builders, supported: filtered}
}

func (f *exchangeFactory) NewProvider(exchange entity.ExchangeID, apiKey, apiSecret string) (port.ExchangeProvider, error) {
	for _, info := range f.supported {
		if info.ID == exchange {
			return NewExchangeProvider(exchange, f.builders[exchange](apiKey, apiSecret)), nil
		}
	}
	return nil, apperr.InvalidInput("exchange.factory", fmt.Errorf("unsupported exchange %q", exchange))
}

func (f *exchangeFactory) Supported() []entity.ExchangeInfo {
	out := make([]entity.ExchangeInfo, len(f.supported))
	copy(out, f.supported)
	return out
}

// WalletProviders indexes wallet providers by chain.
func WalletProviders(providers ...port.WalletProvider) map[entity.Chain]port.WalletProvider {
	m := make(map[entity.Chain]port.WalletProvider, len(providers))
	for _, p := range providers {
		m[p.Chain()] = p
	}
	return m
}
