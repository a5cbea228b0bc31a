package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/albapepper/comeback-scout/internal/model"
)

// messageWriter is the subset of *kafka.Writer the sender uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender publishes alert events to a topic, keyed by match id so all
// events for a match land on one partition.
type KafkaSender struct {
	writer messageWriter
	topic  string
}

// NewKafkaSender returns nil when no brokers are configured.
func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return &KafkaSender{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

func (k *KafkaSender) Name() string { return "kafka:" + k.topic }

func (k *KafkaSender) Send(ctx context.Context, alert model.ComebackAlert) error {
	payload, err := json.Marshal(Event{Type: eventAlertCreated, Alert: alert})
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(alert.MatchID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventAlertCreated)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish alert %s: %w", alert.ID, err)
	}
	return nil
}

func (k *KafkaSender) Close() error {
	return k.writer.Close()
}
