package repository

import (
	"context"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
	pkgkafka "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/kafka"
)

// KafkaEventPublisher publishes prediction events keyed by ticker so
// downstream consumers see per-ticker ordering.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a Kafka-backed event publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, e *models.PredictionEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(e.Ticker), e)
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
