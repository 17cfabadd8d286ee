// Package bootstrap wires configuration into a ready aggregator. Both the API
// server and the CLI build their object graph here.
package bootstrap

import (
	"fmt"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/app/provider"
	"wallet_aggregator/internal/app/service"
	"wallet_aggregator/internal/config"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/infrastructure/exchange"
	"wallet_aggregator/internal/infrastructure/httpclient"
	evmclient "wallet_aggregator/internal/infrastructure/network/client"
	networkdefinition "wallet_aggregator/internal/infrastructure/network/definition"
	"wallet_aggregator/internal/infrastructure/repository/sqlite"
	"wallet_aggregator/internal/pkg/logger"
	"wallet_aggregator/internal/pkg/retry"

	"go.uber.org/zap"
)

const rpcDialTimeout = 10 * time.Second

// App holds the wired components. Close releases the database and RPC connections.
type App struct {
	Aggregator *service.Aggregator
	Sessions   *service.SessionStore
	Repository *sqlite.AccountRepository
	Networks   *networkdefinition.NetworkDefinitionProvider

	evm *evmclient.EVMClient
}

// Close releases held resources.
func (a *App) Close() {
	if a.evm != nil {
		a.evm.Close()
	}
	if a.Repository != nil {
		_ = a.Repository.Close()
	}
}

// Build constructs every client, provider and service from cfg.
func Build(cfg *config.Config, zapLogger *zap.Logger) (*App, error) {
	appLogger := logger.NewSlogAdapter()
	app := &App{}

	networks, err := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Ethereum.TokenListFile, cfg.Ethereum.MaxKnownTokens)
	if err != nil {
		return nil, fmt.Errorf("network definitions: %w", err)
	}
	app.Networks = networks

	explorer := httpclient.NewEtherscanClient(
		cfg.Ethereum.ExplorerBaseURL, cfg.Ethereum.APIKey,
		config.Millis(cfg.Ethereum.RequestTimeoutMillis), cfg.Ethereum.RateLimitPerSecond, zapLogger)

	for _, def := range networks.GetAllNetworkDefinitions() {
		zapLogger.Info("Network enabled", zap.String("chain", string(def.Chain)), zap.String("name", def.Name),
			zap.Int("knownTokens", len(def.KnownTokens)))
	}

	prober, evm := tokenProber(cfg, networks, explorer, appLogger, zapLogger)
	app.evm = evm

	ethProvider := provider.NewEthereumProvider(explorer, networks.KnownTokens(entity.ChainEthereum), appLogger,
		provider.WithTokenProber(prober),
		provider.WithMaxDiscoveredTokens(cfg.Ethereum.MaxDiscoveredTokens),
	)
	btcProvider := provider.NewBitcoinProvider(
		httpclient.NewBlockchainInfoClient(cfg.Bitcoin.BaseURL, config.Millis(cfg.Bitcoin.RequestTimeoutMillis),
			cfg.Bitcoin.RateLimitPerSecond, zapLogger),
		appLogger,
	)

	factory := provider.NewExchangeFactory(
		exchange.Builders(exchange.Options{
			Timeout:        config.Millis(cfg.Exchanges.RequestTimeoutMillis),
			BinanceBaseURL: cfg.Exchanges.BinanceBaseURL,
			BybitBaseURL:   cfg.Exchanges.BybitBaseURL,
			RatePerSecond:  cfg.Exchanges.RateLimitPerSecond,
		}, zapLogger),
		exchange.Supported(),
	)

	prices := service.NewPriceCache(
		httpclient.NewCoinGeckoClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey,
			config.Millis(cfg.CoinGecko.RequestTimeoutMillis), cfg.CoinGecko.RateLimitPerMinute, zapLogger),
		cfg.PriceTTL(), cfg.PriceCache.Capacity, appLogger,
	)

	app.Sessions = service.NewSessionStore(cfg.SessionTimeout(), service.WithSessionLogger(appLogger))

	repo, err := sqlite.Open(cfg.Storage.SQLitePath, zapLogger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("account store: %w", err)
	}
	app.Repository = repo

	retryLog := zapLogger.Named("retry")
	policy := retry.New(
		retry.WithMaxAttempts(cfg.Retry.MaxAttempts),
		retry.WithBaseDelay(config.Millis(cfg.Retry.BaseDelayMs)),
		retry.WithMaxDelay(config.Millis(cfg.Retry.MaxDelayMs)),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			retryLog.Warn("Retrying external call",
				zap.Int("attempt", attempt), zap.Duration("delay", delay),
				zap.String("kind", apperr.KindOf(err).String()), zap.Error(err))
		}),
	)

	app.Aggregator = service.NewAggregator(service.AggregatorDeps{
		Wallets:    provider.WalletProviders(ethProvider, btcProvider),
		Exchanges:  factory,
		Prices:     prices,
		Sessions:   app.Sessions,
		Retry:      policy,
		Repository: repo,
		Logger:     appLogger,
	}, service.AggregatorConfig{
		MaxConcurrentRefreshes: cfg.Aggregator.MaxConcurrentRefreshes,
		RefreshInterval:        cfg.RefreshInterval(),
	})

	return app, nil
}

// tokenProber prefers batched JSON-RPC when an endpoint is configured and
// falls back to per-token explorer calls.
func tokenProber(cfg *config.Config, networks *networkdefinition.NetworkDefinitionProvider, explorer port.ExplorerClient,
	appLogger port.Logger, zapLogger *zap.Logger,
) (port.TokenBalanceProber, *evmclient.EVMClient) {
	explorerProber := provider.NewExplorerTokenProber(explorer, cfg.Ethereum.MaxConcurrentProbes, appLogger)

	var urls []string
	switch {
	case cfg.Ethereum.RPCURL != "":
		urls = append([]string{cfg.Ethereum.RPCURL}, cfg.Ethereum.FallbackRPCURLs...)
	case cfg.Ethereum.UseDefaultRPC:
		if def, ok := networks.GetNetworkDefinition(entity.ChainEthereum); ok {
			urls = def.RPCURLs()
		}
	}
	if len(urls) == 0 {
		return explorerProber, nil
	}

	evm, err := evmclient.NewEVMClient(urls, rpcDialTimeout, config.Millis(cfg.Ethereum.RequestTimeoutMillis), cfg.Ethereum.RPCBatchSize, zapLogger)
	if err != nil {
		zapLogger.Warn("JSON-RPC prober unavailable, using explorer", zap.Error(err))
		return explorerProber, nil
	}
	return evm, evm
}
