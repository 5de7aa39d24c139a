package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/nkalinina/papertrade/internal/adapter/cache"
	"github.com/nkalinina/papertrade/internal/adapter/in_memory"
	httpapi "github.com/nkalinina/papertrade/internal/api/http"
	"github.com/nkalinina/papertrade/internal/config"
	"github.com/nkalinina/papertrade/internal/core"
	"github.com/nkalinina/papertrade/internal/feed"
	"github.com/nkalinina/papertrade/internal/metrics"
	"github.com/nkalinina/papertrade/internal/port"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	metrics.InitMetrics()

	var marketCache port.MarketCache
	if cfg.RedisAddr != "" {
		marketCache = cache.NewRedisCache(cfg.RedisAddr, "", 0, cfg.CacheTTL)
	} else {
		marketCache = in_memory.NewCache()
	}

	engine := core.NewEngine(cfg.Pair, cfg.SeedQuote, logger)
	source := feed.NewBinanceSource()
	poller := feed.NewPoller(source, marketCache, engine, cfg.Pair, cfg.CandleInterval, cfg.PollInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	server := httpapi.NewHTTPServer(engine, poller, marketCache, source, cfg.CandleInterval, logger)
	go func() {
		logger.Infof("starting HTTP server on %s", cfg.ListenAddr)
		if err := server.Run(cfg.ListenAddr); err != nil {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logger.Info("shutting down")
	cancel()
}
