package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher asks running instances to refresh a cache key out of band.
type Publisher struct {
	writer Writer
	logger *zap.Logger
}

func NewPublisher(writer Writer, logger *zap.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
}

func (p *Publisher) RequestSync(ctx context.Context, target string) error {
	value, err := json.Marshal(struct {
		Target string `json:"target"`
	}{Target: target})
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(target),
		Value: value,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("publish sync request %s: %w", target, err)
	}
	p.logger.Info("sync requested", zap.String("target", target))
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
