package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event is the envelope every catalog event is published in.
type Event struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, key string, event Event) error
	Close() error
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger logger.ZapLogger
}

// NewPublisher returns a kafka backed publisher, or a no-op one when no
// brokers are configured.
func NewPublisher(cfg *KafkaConfig, log logger.ZapLogger) Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info("Kafka brokers not configured, product events disabled")
		return NopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteTimeout:           5 * time.Second,
	}

	log.Info("Kafka publisher created", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return newKafkaPublisher(writer, cfg.Topic, log)
}

func newKafkaPublisher(w messageWriter, topic string, log logger.ZapLogger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, logger: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s event: %w", event.EventType, err)
	}

	p.logger.Debug("Kafka event sent",
		zap.String("topic", p.topic),
		zap.String("key", key),
		zap.String("event_type", event.EventType),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
