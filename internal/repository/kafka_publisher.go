package repository

import (
	"context"
	"strconv"

	"github.com/customD73/picker2/internal/domain/models"
	"github.com/customD73/picker2/internal/domain/repository"
	pkgkafka "github.com/customD73/picker2/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Predictions are keyed
// by game id so per-game ordering survives partitioning.
type KafkaPublisher struct {
	producer         *pkgkafka.Producer
	runsTopic        string
	predictionsTopic string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, runsTopic, predictionsTopic string) repository.Publisher {
	return &KafkaPublisher{
		producer:         producer,
		runsTopic:        runsTopic,
		predictionsTopic: predictionsTopic,
	}
}

func (p *KafkaPublisher) PublishRun(ctx context.Context, run *models.CollectionRun) error {
	key := []byte(strconv.Itoa(run.Season.Year) + string(run.Season.Type) + strconv.Itoa(run.Week))
	return p.producer.Publish(ctx, p.runsTopic, key, run)
}

func (p *KafkaPublisher) PublishPredictions(ctx context.Context, preds []*models.GamePrediction) error {
	if len(preds) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(preds))
	for i, pred := range preds {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(strconv.Itoa(pred.GameID)),
			Value: pred,
		}
	}
	return p.producer.PublishBatch(ctx, p.predictionsTopic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
