package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/logger"
)

const (
	maxReconnectBackoff = 30 * time.Second
	staleRunSweep       = time.Minute
)

// BatchProcessor handles one decoded raw batch
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, batch *entity.RawBatch) error
	ResetStaleRuns(ctx context.Context) error
}

// RawBatchConsumer consumes RawBatch JSON messages published by the fetch layer
type RawBatchConsumer struct {
	url       string
	queueName string
	prefetch  int
	processor BatchProcessor
	logger    logger.Logger
}

// NewRawBatchConsumer creates a new raw batch consumer
func NewRawBatchConsumer(url, queueName string, prefetch int, processor BatchProcessor, logger logger.Logger) *RawBatchConsumer {
	return &RawBatchConsumer{
		url:       url,
		queueName: queueName,
		prefetch:  prefetch,
		processor: processor,
		logger:    logger,
	}
}

// StartConsuming consumes until ctx is cancelled, reconnecting with backoff
// when the broker goes away. Stale runs are swept periodically.
func (c *RawBatchConsumer) StartConsuming(ctx context.Context) {
	go c.sweepStaleRuns(ctx)

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			c.logger.Info("Raw batch consumer stopped")
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Error("Failed to dial broker", "error", err, "retryIn", backoff.String())
			if !sleepCtx(ctx, backoff) {
				return
			}
			if backoff < maxReconnectBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if err != nil && ctx.Err() == nil {
			c.logger.Warn("Consume loop ended, reconnecting", "error", err)
			if !sleepCtx(ctx, 2*time.Second) {
				return
			}
		}
	}
}

func (c *RawBatchConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.Warn("Failed to set QoS", "error", err)
	}

	if _, err := ch.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.logger.Info("Consuming raw batches", "queue", c.queueName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.handleDelivery(ctx, d)
		}
	}
}

// handleDelivery acks processed batches. Malformed messages are dropped;
// processing failures are requeued.
func (c *RawBatchConsumer) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var batch entity.RawBatch
	if err := json.Unmarshal(d.Body, &batch); err != nil {
		c.logger.Error("Failed to decode raw batch", "error", err)
		_ = d.Nack(false, false)
		return
	}
	if batch.ReceivedAt.IsZero() {
		batch.ReceivedAt = time.Now().UTC()
	}

	if err := c.processor.ProcessBatch(ctx, &batch); err != nil {
		c.logger.Error("Failed to process raw batch", "batchID", batch.BatchID, "error", err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (c *RawBatchConsumer) sweepStaleRuns(ctx context.Context) {
	ticker := time.NewTicker(staleRunSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.processor.ResetStaleRuns(ctx); err != nil {
				c.logger.Error("Failed to reset stale runs", "error", err)
			}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
