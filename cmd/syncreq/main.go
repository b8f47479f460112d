package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/opsboard/internal/config"
	"github.com/TemirB/opsboard/internal/kafka"
)

// syncreq publishes refresh requests to the sync-requests topic, once or on
// an interval.
func main() {
	target := flag.String("target", "all", "orders, rates or all")
	every := flag.Duration("every", 0, "repeat interval; 0 publishes once")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.LoadKafka()
	if len(cfg.Brokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is not set")
	}

	targets := []string{*target}
	if *target == "all" {
		targets = []string{"orders", "rates"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub := kafka.NewPublisher(kafka.NewWriter(cfg.Brokers, cfg.Topic), logger)
	defer pub.Close()

	publish := func() {
		for _, t := range targets {
			if err := pub.RequestSync(ctx, t); err != nil {
				logger.Error("publish failed", zap.String("target", t), zap.Error(err))
			}
		}
	}

	publish()
	if *every <= 0 {
		return
	}

	ticker := time.NewTicker(*every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publish()
		}
	}
}
