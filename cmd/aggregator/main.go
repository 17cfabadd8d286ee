package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_aggregator/internal/app/bootstrap"
	"wallet_aggregator/internal/app/service"
	"wallet_aggregator/internal/config"
	"wallet_aggregator/internal/infrastructure/restapi"
	"wallet_aggregator/internal/pkg/logger"
	"wallet_aggregator/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: не удалось загрузить конфигурацию: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.Init(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	defer func() { _ = zapLogger.Sync() }()

	logger.Info("Сервис агрегации балансов запускается...")
	metrics.MustRegisterMetrics()

	app, err := bootstrap.Build(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Не удалось собрать приложение", zap.Error(err))
	}
	defer app.Close()

	// Сессия открывается сразу: ключи бирж можно добавлять без отдельного запроса.
	app.Sessions.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	accounts, err := app.Aggregator.LoadAccounts(ctx)
	if err != nil {
		zapLogger.Error("Failed to load saved accounts", zap.Error(err))
	}
	book := service.NewAccountBook(accounts...)
	zapLogger.Info("Accounts restored", zap.Int("count", book.Len()))

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := restapi.NewPortfolioHandler(app.Aggregator, book, app.Sessions, cfg.Aggregator.BaseCurrency, zapLogger)
	router := restapi.SetupRouter(handler, zapLogger)

	srv := restapi.NewServer(cfg.Server.Port, router, restapi.ServerTimeouts{
		Read:  cfg.Server.ReadTimeout,
		Write: cfg.Server.WriteTimeout,
		Idle:  cfg.Server.IdleTimeout,
	})

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Ключи не должны пережить процесс.
	app.Sessions.Clear()
	zapLogger.Info("Server exiting")
}
