package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/config"
	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/pkg/pool"
	"github.com/TemirB/figurine-cart/internal/pkg/retry"
)

type Handler interface {
	Handle(ctx context.Context, ev domain.CartEvent) error
}

// Reader is satisfied by *kafkago.Reader.
type Reader interface {
	Config() kafkago.ReaderConfig
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Consumer reads cart events and hands them to a handler. Handling runs on
// a pool, but the fetch loop waits for each result so offsets are committed
// in the order messages were received.
type Consumer struct {
	handler Handler
	reader  Reader
	pool    *pool.Pool
	policy  config.Retry
	logger  *zap.Logger

	idleBackoff  time.Duration
	errorBackoff time.Duration
}

func NewConsumer(h Handler, r Reader, p *pool.Pool, policy config.Retry, logger *zap.Logger) *Consumer {
	return &Consumer{
		handler:      h,
		reader:       r,
		pool:         p,
		policy:       policy,
		logger:       logger,
		idleBackoff:  10 * time.Second,
		errorBackoff: 500 * time.Millisecond,
	}
}

func NewReader(cfg config.Kafka) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.Group,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	rc := c.reader.Config()
	c.logger.Info("Starting cart events consumer",
		zap.Strings("brokers", rc.Brokers),
		zap.String("group", rc.GroupID),
		zap.String("topic", rc.Topic),
	)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return
			}
			if isIdleTimeout(err) {
				c.logger.Debug("Fetch timed out while idle", zap.Error(err))
				sleepWithContext(ctx, c.idleBackoff)
				continue
			}
			c.logger.Warn("FetchMessage error, backing off", zap.Error(err))
			sleepWithContext(ctx, c.errorBackoff)
			continue
		}

		if !c.process(ctx, msg) {
			return
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warn("Commit failed",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			sleepWithContext(ctx, c.errorBackoff)
		}
	}
}

// process handles one message and reports whether the loop should go on.
// Undecodable messages and events the handler keeps rejecting are logged and
// committed so they cannot stall the partition.
func (c *Consumer) process(ctx context.Context, msg kafkago.Message) bool {
	var ev domain.CartEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		c.logger.Error("Skipping undecodable cart event",
			zap.Error(err),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
		return true
	}

	done := make(chan error, 1)
	accepted := c.pool.Submit(func() {
		done <- retry.Do(ctx, c.policy, func(int) error {
			return c.handler.Handle(ctx, ev)
		})
	})
	if !accepted {
		return false
	}

	select {
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			c.logger.Error("Cart event handling failed, skipping",
				zap.String("event_id", ev.ID),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isIdleTimeout(err error) bool {
	s := err.Error()
	return strings.Contains(s, "Request Timed Out") ||
		strings.Contains(s, "no messages received from kafka within the allocated time")
}
