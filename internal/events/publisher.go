package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/config"
	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/pkg/pool"
	"github.com/TemirB/figurine-cart/internal/pkg/retry"
)

const writeTimeout = 10 * time.Second

// Writer is satisfied by *kafkago.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Kafka publishes cart events keyed by order code. Writes run on a pool so
// publishing never blocks a cart operation on the broker.
type Kafka struct {
	writer Writer
	pool   *pool.Pool
	policy config.Retry
	logger *zap.Logger
	newID  func() string
}

func NewKafka(w Writer, p *pool.Pool, policy config.Retry, logger *zap.Logger) *Kafka {
	return &Kafka{
		writer: w,
		pool:   p,
		policy: policy,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func NewWriter(cfg config.Kafka) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (k *Kafka) Publish(ctx context.Context, ev domain.CartEvent) {
	if ev.ID == "" {
		ev.ID = k.newID()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	value, err := json.Marshal(ev)
	if err != nil {
		k.logger.Error("Error while encoding cart event", zap.String("event_id", ev.ID), zap.Error(err))
		return
	}
	msg := kafkago.Message{
		Value:   value,
		Time:    ev.At,
		Headers: []kafkago.Header{{Key: "kind", Value: []byte(ev.Kind)}},
	}
	if ev.OrderCode != "" {
		msg.Key = []byte(ev.OrderCode)
	}

	// The write outlives the request that produced the event.
	wctx := context.WithoutCancel(ctx)
	if !k.pool.Submit(func() { k.write(wctx, ev, msg) }) {
		k.logger.Warn("Cart event dropped, publisher closed",
			zap.String("event_id", ev.ID),
			zap.String("kind", string(ev.Kind)),
		)
	}
}

func (k *Kafka) write(ctx context.Context, ev domain.CartEvent, msg kafkago.Message) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err := retry.Do(ctx, k.policy, func(attempt int) error {
		err := k.writer.WriteMessages(ctx, msg)
		if err != nil {
			k.logger.Debug("Cart event write failed",
				zap.String("event_id", ev.ID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		k.logger.Error("Cart event lost",
			zap.String("event_id", ev.ID),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err),
		)
		return
	}
	k.logger.Debug("Cart event published",
		zap.String("event_id", ev.ID),
		zap.String("kind", string(ev.Kind)),
		zap.String("order_code", ev.OrderCode),
	)
}

// Close drains queued writes, then closes the writer.
func (k *Kafka) Close() error {
	k.pool.Close()
	return k.writer.Close()
}

// Noop discards events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, domain.CartEvent) {}

func (Noop) Close() error { return nil }
