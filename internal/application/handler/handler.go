package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/opsboard/internal/config"
	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/pkg/breaker"
	"github.com/TemirB/opsboard/internal/pkg/retry"
)

//go:generate mockgen -source internal/application/handler/handler.go -destination=internal/application/handler/handler_mock_test.go -package=handler

const (
	TargetOrders = "orders"
	TargetRates  = "rates"
)

var ErrSync = errors.New("sync failed")

type Syncer interface {
	ForceSyncOrders(ctx context.Context) (domain.SyncResult, error)
	ForceRefreshRates(ctx context.Context) (domain.RateSnapshot, error)
}

type request struct {
	Target string `json:"target"`
}

// Handler turns sync-request messages into forced refreshes.
type Handler struct {
	syncer      Syncer
	logger      *zap.Logger
	retryPolicy config.Retry
}

func NewHandler(syncer Syncer, retryPolicy config.Retry, logger *zap.Logger) *Handler {
	return &Handler{
		syncer:      syncer,
		logger:      logger,
		retryPolicy: retryPolicy,
	}
}

// Handle is called by the consumer for one message. Malformed requests are
// logged and acknowledged; a refresh that keeps failing is returned so the
// offset is not committed.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	var req request
	if err := json.Unmarshal(message.Value, &req); err != nil {
		h.logger.Error("bad json format, dropping message",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return nil
	}

	target := strings.ToLower(strings.TrimSpace(req.Target))
	var refresh func() error
	switch target {
	case TargetOrders:
		refresh = func() error {
			res, err := h.syncer.ForceSyncOrders(ctx)
			if err == nil {
				h.logger.Info("orders synced on request",
					zap.Int("imported", res.Imported),
					zap.Time("last_sync", res.LastSync),
					zap.Bool("stale", res.Stale),
				)
			}
			return err
		}
	case TargetRates:
		refresh = func() error {
			snap, err := h.syncer.ForceRefreshRates(ctx)
			if err == nil {
				h.logger.Info("rates refreshed on request",
					zap.Float64("current", snap.Current),
					zap.String("source", snap.Source),
					zap.Bool("stale", snap.Stale),
				)
			}
			return err
		}
	default:
		h.logger.Error("unknown sync target, dropping message",
			zap.String("target", req.Target),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return nil
	}

	attempt := func() error {
		err := refresh()
		if errors.Is(err, breaker.ErrOpenState) {
			// the breaker stays open for its whole timeout
			return retry.Permanent(err)
		}
		return err
	}

	if err := retry.Do(ctx, h.retryPolicy, attempt); err != nil {
		h.logger.Error("sync failed after retries",
			zap.String("target", target),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %s: %w", ErrSync, target, err)
	}
	return nil
}
