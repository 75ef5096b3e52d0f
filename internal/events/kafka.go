package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type Kafka struct {
	client *kgo.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewKafka(brokers []string, topic string, logger *zap.Logger) (*Kafka, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, logger: logger, now: time.Now}, nil
}

func (k *Kafka) Publish(ctx context.Context, ev Event) error {
	rec, err := record(ev, k.now())
	if err != nil {
		return err
	}
	if err := k.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", ev.Type(), err)
	}
	k.logger.Debug("event published", zap.String("type", ev.Type()), zap.String("key", ev.Key()))
	return nil
}

func (k *Kafka) Close() {
	k.client.Close()
}

func record(ev Event, now time.Time) (*kgo.Record, error) {
	env, err := Wrap(ev, now)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Type(), err)
	}
	value, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Type(), err)
	}
	return &kgo.Record{
		Key:   []byte(ev.Key()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(ev.Type())},
		},
	}, nil
}
