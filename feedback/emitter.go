package feedback

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// Emitter publishes feedback events.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
	Close() error
}

// NopEmitter discards all events. Used when Kafka is not configured.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(context.Context, Event) error { return nil }

// Close implements Emitter.
func (NopEmitter) Close() error { return nil }

// KafkaEmitter publishes feedback events to a Kafka topic.
type KafkaEmitter struct {
	logger logger.Logger
	topic  string

	p *kafka.Producer

	wg   sync.WaitGroup
	done chan struct{}
}

// NewKafkaEmitter creates an emitter connected to the configured brokers.
func NewKafkaEmitter(log logger.Logger, cfg *Config) (*KafkaEmitter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configMap := &kafka.ConfigMap{
		"bootstrap.servers": strings.Join(cfg.Brokers, ","),
		"acks":              cfg.Acks,
	}
	if cfg.ClientID != "" {
		_ = configMap.SetKey("client.id", cfg.ClientID)
	}

	producer, err := kafka.NewProducer(configMap)
	if err != nil {
		return nil, ErrProducer(err)
	}

	e := &KafkaEmitter{
		logger: log,
		topic:  cfg.Topic,
		p:      producer,
		done:   make(chan struct{}),
	}

	e.wg.Add(1)
	go e.handleDeliveryReports()

	log.Info("feedback emitter initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return e, nil
}

// handleDeliveryReports drains the producer's event channel so failed
// deliveries get logged.
func (e *KafkaEmitter) handleDeliveryReports() {
	defer e.wg.Done()

	for {
		select {
		case <-e.done:
			return
		case ev := <-e.p.Events():
			switch msg := ev.(type) {
			case *kafka.Message:
				if msg.TopicPartition.Error != nil {
					e.logger.Error("failed to deliver feedback event",
						zap.Error(msg.TopicPartition.Error),
					)
				}
			case kafka.Error:
				e.logger.Error("kafka producer error",
					zap.Int("code", int(msg.Code())),
					zap.String("error", msg.String()),
				)
			}
		}
	}
}

// Emit publishes one event, keyed by user id so a user's feedback stays
// ordered within a partition.
func (e *KafkaEmitter) Emit(_ context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return ErrEncode(err)
	}
	return e.p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &e.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.UserID),
		Value: value,
	}, nil)
}

// Close flushes pending events and shuts the producer down.
func (e *KafkaEmitter) Close() error {
	close(e.done)
	e.wg.Wait()

	remaining := e.p.Flush(10000)
	if remaining > 0 {
		e.logger.Warn("unflushed feedback events at shutdown", zap.Int("remaining", remaining))
	}

	e.p.Close()
	return nil
}
