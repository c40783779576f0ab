// Package activity publishes onboarding progress events to kafka. Events
// are a side channel: publishing never fails the request that caused it.
package activity

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventStep      = "onboarding.step"
	EventReset     = "onboarding.reset"
	EventCompleted = "onboarding.completed"
)

type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	Step       string    `json:"step,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event)
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) {}
func (Nop) Close() error                      { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaPublisher writes asynchronously to topic, keyed by user so one
// user's events stay ordered within a partition.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		MaxAttempts:  3,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(msg, args...))
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Warn(fmt.Sprintf(msg, args...))
		}),
	}
	return newPublisher(w, logger)
}

func newPublisher(w messageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			p.logger.Warn("failed to encode activity event", zap.String("type", ev.Type), zap.Error(err))
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.UserID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(ev.Type)},
			},
			Time: ev.OccurredAt,
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Warn("failed to publish activity", zap.Int("events", len(msgs)), zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
