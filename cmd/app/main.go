package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/opsboard/internal/application/handler"
	"github.com/TemirB/opsboard/internal/application/service"
	"github.com/TemirB/opsboard/internal/config"
	"github.com/TemirB/opsboard/internal/database"
	"github.com/TemirB/opsboard/internal/httpapi"
	"github.com/TemirB/opsboard/internal/kafka"
	"github.com/TemirB/opsboard/internal/observability"
	"github.com/TemirB/opsboard/internal/purchase"
	"github.com/TemirB/opsboard/internal/transform"
	"github.com/TemirB/opsboard/internal/upstream"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogDev)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewInmem(1000)

	average, err := transform.NewAverageStrategy(cfg.Rates.Average, cfg.Rates.AverageWindow)
	if err != nil {
		logger.Fatal("average strategy", zap.Error(err))
	}

	client := upstream.NewClient(cfg.Orders, cfg.Rates, cfg.Breaker, logger.Named("upstream"))
	svc, err := service.NewService(client, service.Config{
		Orders:  cfg.Orders,
		Rates:   cfg.Rates,
		Average: average,
	}, logger.Named("service"), metrics)
	if err != nil {
		logger.Fatal("service init", zap.Error(err))
	}

	var purchases httpapi.Purchases
	if cfg.HasPostgres() {
		pool, err := database.Connect(ctx, cfg.DSN(), logger.Named("pg"))
		if err != nil {
			logger.Fatal("postgres connect", zap.Error(err))
		}
		defer pool.Close()
		purchases = purchase.NewService(database.New(pool, cfg.Tables), logger.Named("purchase"), time.Now)
	} else {
		logger.Warn("PG_HOST/PG_DB not set, purchase endpoints disabled")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		if err := kafka.EnsureTopic(ctx, cfg.Kafka, 1, 1, logger); err != nil {
			logger.Error("ensure topic", zap.Error(err))
		}
		reader := kafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Group)
		defer reader.Close()

		h := handler.NewHandler(svc, cfg.Retry, logger.Named("sync"))
		go kafka.NewConsumer(h, reader, cfg.Kafka.Workers, logger.Named("kafka")).Start(ctx)
	}

	svc.Warm(ctx)

	srv := httpapi.New(svc, purchases, logger.Named("http"), metrics)
	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server", zap.Error(err))
	}
	logger.Info("stopped")
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
