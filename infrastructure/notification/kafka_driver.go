package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"invoicing/domain/notification"
	"invoicing/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboundMessage is the payload published by KafkaDriver.
type OutboundMessage struct {
	Reference string    `json:"reference"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// KafkaDriver hands messages to an external mailer through a Kafka topic.
// The write is synchronous so a broker failure reaches the caller.
type KafkaDriver struct {
	writer messageWriter
	topic  string
}

func NewKafkaDriver(brokers []string, topic string) *KafkaDriver {
	l := logger.With(zap.String("component", "kafka-writer"), zap.String("topic", topic))

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		Logger:                 kafka.LoggerFunc(l.Sugar().Debugf),
		ErrorLogger:            kafka.LoggerFunc(l.Sugar().Errorf),
		AllowAutoTopicCreation: true,
	}

	return &KafkaDriver{writer: w, topic: topic}
}

func (d *KafkaDriver) Name() string { return "kafka" }

func (d *KafkaDriver) Send(ctx context.Context, msg notification.Message) error {
	b, err := json.Marshal(OutboundMessage{
		Reference: msg.Reference,
		To:        msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = d.writer.WriteMessages(ctx, kafka.Message{
		Topic: d.topic,
		Key:   []byte(msg.Reference),
		Value: b,
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (d *KafkaDriver) Close() error {
	return d.writer.Close()
}

var _ notification.Driver = (*KafkaDriver)(nil)
