package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"invoicing/domain/notification"
	"invoicing/infrastructure/persistence/retry"
	"invoicing/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Receipt is a delivery confirmation published by the mailer.
type Receipt struct {
	Reference string `json:"reference"`
}

// DeliveredFunc receives the reference of a delivered message.
type DeliveredFunc func(ctx context.Context, reference string) error

// receiptBackoff paces redelivery of a receipt whose handler failed transiently.
var receiptBackoff = retry.Config{
	InitialDelay:  500 * time.Millisecond,
	MaxDelay:      30 * time.Second,
	BackoffFactor: 2,
	JitterEnabled: true,
}

// ReceiptConsumer reads delivery receipts and forwards them to the notification service.
//
// A receipt is committed once it is applied or can never be applied: malformed
// JSON or a reference rejected with ErrInvalidReference. Any other handler error
// is retried with backoff, holding the partition, until it succeeds or the
// consumer stops; an uncommitted receipt is redelivered after a restart.
type ReceiptConsumer struct {
	reader    messageReader
	delivered DeliveredFunc
	log       *zap.Logger
	backoff   retry.Config

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func NewReceiptConsumer(brokers []string, groupID, topic string, delivered DeliveredFunc) *ReceiptConsumer {
	l := logger.With(zap.String("component", "kafka-receipts"), zap.String("group_id", groupID))

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: []string{topic},
		Logger:      kafka.LoggerFunc(l.Sugar().Debugf),
		ErrorLogger: kafka.LoggerFunc(l.Sugar().Errorf),
	})

	return newReceiptConsumer(r, delivered, l)
}

func newReceiptConsumer(reader messageReader, delivered DeliveredFunc, l *zap.Logger) *ReceiptConsumer {
	return &ReceiptConsumer{
		reader:    reader,
		delivered: delivered,
		log:       l,
		backoff:   receiptBackoff,
		stop:      make(chan struct{}),
	}
}

// Start consumes in a background goroutine until ctx is done or the consumer is closed.
func (c *ReceiptConsumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Run(ctx); err != nil {
			c.log.Error("receipt consumer stopped", zap.Error(err))
		}
	}()
}

// Run blocks until ctx is done or the reader is closed.
func (c *ReceiptConsumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if !c.handle(ctx, m) {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

// handle reports whether m may be committed; false means the consumer is stopping.
func (c *ReceiptConsumer) handle(ctx context.Context, m kafka.Message) bool {
	log := c.log.With(zap.Int("partition", m.Partition), zap.Int64("offset", m.Offset))

	var receipt Receipt
	if err := json.Unmarshal(m.Value, &receipt); err != nil {
		log.Warn("skipping malformed receipt", zap.Error(err))
		return true
	}
	log = log.With(zap.String("reference", receipt.Reference))

	for attempt := 1; ; attempt++ {
		err := c.delivered(ctx, receipt.Reference)
		switch {
		case err == nil:
			return true
		case errors.Is(err, notification.ErrInvalidReference):
			log.Warn("skipping receipt with invalid reference", zap.Error(err))
			return true
		}

		delay := retry.ExponentialBackoffWithJitter(attempt, c.backoff)
		log.Error("failed to process receipt, will retry",
			zap.Int("attempt", attempt), zap.Duration("retry_in", delay), zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-c.stop:
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// Close stops the reader and waits for Start's goroutine.
func (c *ReceiptConsumer) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	err := c.reader.Close()
	c.wg.Wait()
	return err
}
