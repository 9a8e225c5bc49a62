package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"eodseries/internal/config"
	"eodseries/internal/httpx"
	"eodseries/internal/logging"
	"eodseries/internal/menu"
	"eodseries/internal/present"
	"eodseries/internal/provider"
	"eodseries/internal/provider/cache"
	"eodseries/internal/provider/quandl"
	"eodseries/internal/provider/quandladapter"
	"eodseries/internal/provider/ratelimit"
	"eodseries/internal/report"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = menu.Run(ctx, os.Stdin, os.Stdout, menu.Actions{
		Quandl: func(ctx context.Context) error { return runQuandl(ctx, cfg, logger) },
	})
	if err != nil {
		stop()
		logger.Fatal("quandl print failed", zap.Error(err))
	}
}

// runQuandl builds the provider chain from cfg and prints the report.
// The client is built here so that the no-op selection works without an API key.
func runQuandl(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	p, err := buildProvider(cfg, logger)
	if err != nil {
		return err
	}
	btcRange, err := provider.ParseDateRange(cfg.Bitcoin.StartDate, cfg.Bitcoin.EndDate)
	if err != nil {
		return fmt.Errorf("bitcoin range: %w", err)
	}
	eqRange, err := provider.ParseDateRange(cfg.Equity.StartDate, cfg.Equity.EndDate)
	if err != nil {
		return fmt.Errorf("equity range: %w", err)
	}

	r := &report.Report{
		Provider:  p,
		Presenter: present.New(os.Stdout),
		Bitcoin:   report.Spec{Code: cfg.Bitcoin.Code, Column: cfg.Bitcoin.Column, Range: btcRange},
		Equity:    report.Spec{Code: cfg.Equity.Code, Column: cfg.Equity.Column, Range: eqRange},
		Logger:    logger,
	}
	return r.Run(ctx)
}

func buildProvider(cfg config.Config, logger *zap.Logger) (provider.Provider, error) {
	httpClient := httpx.New(time.Duration(cfg.HTTP.RequestTimeoutSec) * time.Second)
	if cfg.HTTP.UserAgent != "" {
		httpClient.UserAgent = cfg.HTTP.UserAgent
	}

	opts := []quandl.ClientOption{quandl.WithHTTPClient(httpClient)}
	if cfg.Quandl.BaseURL != "" {
		opts = append(opts, quandl.WithBaseURL(cfg.Quandl.BaseURL))
	}
	client, err := quandl.NewClient(cfg.Quandl.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: set [quandl] api_key or QUANDL_API_KEY", err)
	}

	var p provider.Provider = quandladapter.New(quandladapter.Config{Name: "Quandl"}, client, logger)
	p = ratelimit.Wrap(p, ratelimit.Limits{
		PerMinute:   cfg.Quandl.MaxRequestsPerMinute,
		Burst:       cfg.Quandl.Burst,
		MinInterval: time.Duration(cfg.Quandl.MinRequestIntervalSec) * time.Second,
		Cooldown:    time.Duration(cfg.Quandl.RateLimitCooldownSec) * time.Second,
	})
	if cfg.Cache.Dir != "" {
		p = &cache.File{P: p, Dir: cfg.Cache.Dir, TTL: time.Duration(cfg.Cache.TTLSeconds) * time.Second, Log: logger}
	}
	if cfg.Cache.TTLSeconds > 0 {
		p = &cache.Provider{P: p, TTL: time.Duration(cfg.Cache.TTLSeconds) * time.Second, MaxItems: cfg.Cache.MaxItems, Log: logger}
	}
	return p, nil
}
