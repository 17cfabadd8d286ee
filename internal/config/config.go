package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application. It is read once
// at start-up and never re-read.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Ethereum   EthereumConfig   `yaml:"ethereum"`
	Bitcoin    BitcoinConfig    `yaml:"bitcoin"`
	Exchanges  ExchangesConfig  `yaml:"exchanges"`
	CoinGecko  CoinGeckoConfig  `yaml:"coinGecko"`
	PriceCache PriceCacheConfig `yaml:"priceCache"`
	Session    SessionConfig    `yaml:"session"`
	Retry      RetryConfig      `yaml:"retry"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// EthereumConfig configures the explorer client and the optional JSON-RPC prober.
type EthereumConfig struct {
	ExplorerBaseURL      string   `yaml:"explorerBaseURL"`
	APIKey               string   `yaml:"apiKey"`
	RequestTimeoutMillis int64    `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64  `yaml:"rateLimitPerSecond"`
	RPCURL               string   `yaml:"rpcURL"`
	UseDefaultRPC        bool     `yaml:"useDefaultRPC"` // probe via the built-in public endpoints when rpcURL is empty
	FallbackRPCURLs      []string `yaml:"fallbackRpcURLs"`
	RPCBatchSize         int      `yaml:"rpcBatchSize"`
	TokenListFile        string   `yaml:"tokenListFile"`
	MaxKnownTokens       int      `yaml:"maxKnownTokens"`
	MaxDiscoveredTokens  int      `yaml:"maxDiscoveredTokens"`
	MaxConcurrentProbes  int      `yaml:"maxConcurrentProbes"`
}

// BitcoinConfig configures the blockchain.info client.
type BitcoinConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
}

// ExchangesConfig configures exchange SDK clients. The rate applies per
// exchange, shared by every account on it.
type ExchangesConfig struct {
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	BinanceBaseURL       string  `yaml:"binanceBaseURL"`
	BybitBaseURL         string  `yaml:"bybitBaseURL"`
}

// CoinGeckoConfig holds the configuration for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerMinute   float64 `yaml:"rateLimitPerMinute"`
}

// PriceCacheConfig holds price cache bounds.
type PriceCacheConfig struct {
	TTLSeconds int `yaml:"ttlSeconds"`
	Capacity   int `yaml:"capacity"`
}

// SessionConfig holds the credential session lifetime.
type SessionConfig struct {
	TimeoutMinutes int `yaml:"timeoutMinutes"`
}

// RetryConfig holds the backoff policy for external calls.
type RetryConfig struct {
	MaxAttempts int   `yaml:"maxAttempts"`
	BaseDelayMs int64 `yaml:"baseDelayMs"`
	MaxDelayMs  int64 `yaml:"maxDelayMs"`
}

// AggregatorConfig holds refresh concurrency and staleness settings.
type AggregatorConfig struct {
	MaxConcurrentRefreshes int    `yaml:"maxConcurrentRefreshes"`
	RefreshIntervalSeconds int    `yaml:"refreshIntervalSeconds"`
	BaseCurrency           string `yaml:"baseCurrency"`
}

// StorageConfig holds the account store location.
type StorageConfig struct {
	SQLitePath string `yaml:"sqlitePath"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// Environment variables that override API keys from the YAML file.
const (
	EnvEtherscanAPIKey = "ETHERSCAN_API_KEY"
	EnvCoinGeckoAPIKey = "COINGECKO_API_KEY"
	EnvEthereumRPCURL  = "ETHEREUM_RPC_URL"
)

// LoadConfig loads configuration from a YAML file. A missing file yields the
// defaults. Values from a .env file and the environment override API keys.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("Failed to load .env file: %v", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults", path)
	case err != nil:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Ethereum.APIKey == "" {
		logrus.Warnf("Ethereum explorer API key is empty, set %s or ethereum.apiKey", EnvEtherscanAPIKey)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvEtherscanAPIKey); v != "" {
		cfg.Ethereum.APIKey = v
	}
	if v := os.Getenv(EnvCoinGeckoAPIKey); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv(EnvEthereumRPCURL); v != "" {
		cfg.Ethereum.RPCURL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Ethereum.ExplorerBaseURL == "" {
		cfg.Ethereum.ExplorerBaseURL = "https://api.etherscan.io/api"
		logrus.Infof("Ethereum.ExplorerBaseURL not set, defaulting to %s", cfg.Ethereum.ExplorerBaseURL)
	}
	if cfg.Ethereum.RequestTimeoutMillis == 0 {
		cfg.Ethereum.RequestTimeoutMillis = 10000
	}
	if cfg.Ethereum.RateLimitPerSecond == 0 {
		cfg.Ethereum.RateLimitPerSecond = 5
	}
	if cfg.Ethereum.RPCBatchSize == 0 {
		cfg.Ethereum.RPCBatchSize = 20
	}
	if cfg.Ethereum.MaxKnownTokens == 0 {
		cfg.Ethereum.MaxKnownTokens = 20
	}
	if cfg.Ethereum.MaxDiscoveredTokens == 0 {
		cfg.Ethereum.MaxDiscoveredTokens = 20
	}
	if cfg.Ethereum.MaxConcurrentProbes == 0 {
		cfg.Ethereum.MaxConcurrentProbes = 4
	}

	if cfg.Bitcoin.BaseURL == "" {
		cfg.Bitcoin.BaseURL = "https://blockchain.info"
		logrus.Infof("Bitcoin.BaseURL not set, defaulting to %s", cfg.Bitcoin.BaseURL)
	}
	if cfg.Bitcoin.RequestTimeoutMillis == 0 {
		cfg.Bitcoin.RequestTimeoutMillis = 10000
	}
	if cfg.Bitcoin.RateLimitPerSecond == 0 {
		cfg.Bitcoin.RateLimitPerSecond = 1
	}

	if cfg.Exchanges.RequestTimeoutMillis == 0 {
		cfg.Exchanges.RequestTimeoutMillis = 15000
	}
	if cfg.Exchanges.RateLimitPerSecond == 0 {
		cfg.Exchanges.RateLimitPerSecond = 10
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.RequestTimeoutMillis == 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	if cfg.CoinGecko.RateLimitPerMinute == 0 {
		cfg.CoinGecko.RateLimitPerMinute = 50
	}

	if cfg.PriceCache.TTLSeconds == 0 {
		cfg.PriceCache.TTLSeconds = 60
	}
	if cfg.PriceCache.Capacity == 0 {
		cfg.PriceCache.Capacity = 100
	}

	if cfg.Session.TimeoutMinutes == 0 {
		cfg.Session.TimeoutMinutes = 60
	}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.BaseDelayMs == 0 {
		cfg.Retry.BaseDelayMs = 2000
	}
	if cfg.Retry.MaxDelayMs == 0 {
		cfg.Retry.MaxDelayMs = 10000
	}

	if cfg.Aggregator.MaxConcurrentRefreshes == 0 {
		cfg.Aggregator.MaxConcurrentRefreshes = 10
		logrus.Infof("Aggregator.MaxConcurrentRefreshes not set, defaulting to %d", cfg.Aggregator.MaxConcurrentRefreshes)
	}
	if cfg.Aggregator.RefreshIntervalSeconds == 0 {
		cfg.Aggregator.RefreshIntervalSeconds = 30
	}
	if cfg.Aggregator.BaseCurrency == "" {
		cfg.Aggregator.BaseCurrency = "usd"
	}

	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/portfolio.db"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Millis converts a millisecond setting to a duration.
func Millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// SessionTimeout returns the credential session lifetime.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.TimeoutMinutes) * time.Minute
}

// PriceTTL returns the price cache time-to-live.
func (c *Config) PriceTTL() time.Duration {
	return time.Duration(c.PriceCache.TTLSeconds) * time.Second
}

// RefreshInterval returns the age after which holdings count as stale.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Aggregator.RefreshIntervalSeconds) * time.Second
}
