package events

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/config"
)

var (
	ErrNoBrokers  = errors.New("no kafka brokers configured")
	ErrEmptyTopic = errors.New("empty kafka topic")
)

const (
	topicPartitions  = 3
	topicReplication = 1
	topicWait        = 10 * time.Second
)

// EnsureTopic creates the cart events topic when it is missing and waits for
// its partitions to show up in metadata. Calling it for an existing topic is
// a no-op.
func EnsureTopic(ctx context.Context, cfg config.Kafka, logger *zap.Logger) error {
	if len(cfg.Brokers) == 0 {
		return ErrNoBrokers
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return ErrEmptyTopic
	}

	dialer := &kafkago.Dialer{Timeout: topicWait}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	if parts, err := conn.ReadPartitions(cfg.Topic); err == nil && len(parts) > 0 {
		logger.Info("Cart events topic exists", zap.String("topic", cfg.Topic), zap.Int("partitions", len(parts)))
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}
	addr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	ctrl, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial controller %s: %w", addr, err)
	}
	defer ctrl.Close()

	logger.Info("Creating cart events topic",
		zap.String("topic", cfg.Topic),
		zap.Int("partitions", topicPartitions),
	)
	err = ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     topicPartitions,
		ReplicationFactor: topicReplication,
	})
	if err != nil && !errors.Is(err, kafkago.TopicAlreadyExists) {
		return fmt.Errorf("create topic: %w", err)
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(topicWait)
	for {
		if parts, err := conn.ReadPartitions(cfg.Topic); err == nil && len(parts) >= topicPartitions {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("topic %s not visible after creation", cfg.Topic)
		case <-ticker.C:
		}
	}
}
