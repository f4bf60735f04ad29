package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/contracts"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

type Message struct {
	Topic   string
	Key     string
	Payload []byte
}

type Consumer interface {
	Poll(ctx context.Context, max int) ([]Message, error)
}

// EventHandler applies one decoded inbound event.
type EventHandler interface {
	HandleCanonicalEvent(ctx context.Context, envelope contracts.EventEnvelope) error
}

type ConsumerWorker struct {
	logger   *slog.Logger
	consumer Consumer
	handler  EventHandler
	interval time.Duration
}

func NewConsumerWorker(logger *slog.Logger, consumer Consumer, handler EventHandler, interval time.Duration) *ConsumerWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &ConsumerWorker{
		logger: logger, consumer: consumer, handler: handler, interval: interval,
	}
}

func (w *ConsumerWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.processOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "consumer iteration failed",
				"module", "events.consumer_worker",
				"layer", "adapter",
				"operation", "process_once",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// processOnce handles a batch. Malformed or rejected events are logged and
// skipped so one bad message cannot stall the partition.
func (w *ConsumerWorker) processOnce(ctx context.Context) error {
	msgs, err := w.consumer.Poll(ctx, 50)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		var envelope contracts.EventEnvelope
		if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
			w.logger.WarnContext(ctx, "undecodable event skipped",
				"module", "events.consumer_worker",
				"layer", "adapter",
				"operation", "decode",
				"outcome", "failure",
				"topic", msg.Topic,
				"error", err,
			)
			continue
		}
		if err := w.handler.HandleCanonicalEvent(ctx, envelope); err != nil {
			level := slog.LevelWarn
			if !errors.Is(err, domain.ErrInvalidEnvelope) && !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrUnsupportedEventType) {
				level = slog.LevelError
			}
			w.logger.Log(ctx, level, "event handling failed",
				"module", "events.consumer_worker",
				"layer", "adapter",
				"operation", "handle",
				"outcome", "failure",
				"topic", msg.Topic,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err,
			)
		}
	}
	return nil
}
