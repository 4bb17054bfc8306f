package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"
	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
)

// KafkaPublisher publica eventos de integración. El topic sale del registro según
// el tipo del evento, así que el writer debe crearse sin Topic.
type KafkaPublisher struct {
	writer   *kafka.Writer
	registry sharedEvents.Registry
	log      *zap.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, registry sharedEvents.Registry, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, registry: registry, log: log}
}

// NewKafkaWriter crea un writer multi-topic con balanceo por clave.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{Value: data}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.Key = []byte(keyer.PartitionKey())
	}
	if evt, ok := event.(sharedEvents.IntegrationEvent); ok {
		if meta, found := p.registry[evt.Type]; found {
			msg.Topic = meta.Topic
		}
	}
	if msg.Topic == "" {
		p.log.Warn("Event without topic, discarded", zap.Any("event", event))
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error publishing to Kafka", zap.String("topic", msg.Topic), zap.Error(err))
		return err
	}

	p.log.Debug("Event published successfully", zap.String("topic", msg.Topic))
	return nil
}

var _ sharedBus.EventBus = (*KafkaPublisher)(nil)
