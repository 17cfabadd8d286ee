package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"wallet_aggregator/internal/app/bootstrap"
	"wallet_aggregator/internal/config"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/infrastructure/exchange"
	"wallet_aggregator/internal/infrastructure/walletloader"
	"wallet_aggregator/internal/pkg/logger"
	"wallet_aggregator/internal/pkg/validate"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to the YAML config")
	walletsFile := flag.String("wallets", "", "optional file with chain,address[,name] lines to import")
	currency := flag.String("currency", "", "base currency, defaults to aggregator.baseCurrency")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: не удалось загрузить конфигурацию: %v\n", err)
		os.Exit(1)
	}
	if *currency == "" {
		*currency = cfg.Aggregator.BaseCurrency
	}

	zapLogger := logger.Init(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger, *walletsFile, *currency); err != nil {
		zapLogger.Error("Portfolio run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger, walletsFile, currency string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := bootstrap.Build(cfg, zapLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Sessions.Init()
	defer app.Sessions.Clear()

	accounts, err := app.Aggregator.LoadAccounts(ctx)
	if err != nil {
		return err
	}

	if walletsFile != "" {
		accounts = importWallets(ctx, app, walletsFile, accounts)
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts. Use -wallets to import addresses or add them through the API.")
		return nil
	}

	unlockExchanges(app, accounts)

	results := app.Aggregator.RefreshAll(ctx, accounts)
	for _, r := range entity.Failed(results) {
		fmt.Fprintf(os.Stderr, "refresh %s: %s (%v)\n", r.AccountID, apperr.KindOf(r.Err), r.Err)
	}

	printPortfolio(ctx, app, accounts, currency)
	return nil
}

func importWallets(ctx context.Context, app *bootstrap.App, path string, accounts []*entity.Account) []*entity.Account {
	known := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		known[acc.ID] = true
	}

	appLogger := logger.NewSlogAdapter()
	entries, err := walletloader.NewWalletFileLoader(path, appLogger.Info).GetWallets()
	if err != nil {
		appLogger.Error("Не удалось прочитать файл кошельков", "path", path, "error", err)
		return accounts
	}

	for _, e := range entries {
		if known[entity.WalletAccountID(e.Chain, e.Address)] {
			continue
		}
		acc, err := app.Aggregator.AddWallet(ctx, e.Name, e.Chain, e.Address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s %s: %v\n", e.Chain, e.Address, err)
			continue
		}
		if err := app.Aggregator.SaveAccount(ctx, acc); err != nil {
			appLogger.Warn("Account not persisted", "account", acc.ID, "error", err)
		}
		known[acc.ID] = true
		accounts = append(accounts, acc)
	}
	return accounts
}

// unlockExchanges asks for each exchange account's key pair. Keys live only
// in the session store and are wiped on exit.
func unlockExchanges(app *bootstrap.App, accounts []*entity.Account) {
	first := true
	for _, acc := range accounts {
		if acc.Kind != entity.AccountKindExchange {
			continue
		}
		if first {
			fmt.Fprintln(os.Stderr, "Use read-only keys. Required:")
			for _, p := range exchange.RequiredPermissions() {
				fmt.Fprintf(os.Stderr, "  + %s\n", p)
			}
			fmt.Fprintln(os.Stderr, "Disable:")
			for _, p := range exchange.ForbiddenPermissions() {
				fmt.Fprintf(os.Stderr, "  - %s\n", p)
			}
			first = false
		}

		fmt.Fprintf(os.Stderr, "\n%s (%s). Leave the key empty to skip.\n", acc.Name, acc.ExchangeID)
		key, err := promptSecret("API key")
		if err != nil || key == "" {
			continue
		}
		secret, err := promptSecret("API secret")
		if err != nil {
			continue
		}
		if err := validate.Credential(key, secret); err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", acc.Name, err)
			continue
		}
		if err := app.Sessions.StoreCredential(acc.ID, key, secret); err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", acc.Name, err)
		}
	}
}

func printPortfolio(ctx context.Context, app *bootstrap.App, accounts []*entity.Account, currency string) {
	p := app.Aggregator.PortfolioTotal(ctx, accounts, currency)
	byID := make(map[string]*entity.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ACCOUNT\tKIND\tSTATE\tVALUE (%s)\tSHARE\n", p.BaseCurrency)
	for _, v := range p.Accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\n",
			v.Name, v.Kind, app.Aggregator.State(byID[v.AccountID]),
			v.Value.StringFixed(2), v.Share.StringFixed(2))
	}
	fmt.Fprintf(w, "TOTAL\t\t\t%s\t\n", p.Total.StringFixed(2))
	_ = w.Flush()
}
