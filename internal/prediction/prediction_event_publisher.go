package prediction

import (
	"context"
	"encoding/json"

	"github.com/iamami1990/rh-platform/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishPredictionScored(ctx context.Context, event events.PredictionScoredEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishPredictionScored(context.Context, events.PredictionScoredEvent) error {
	return nil
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishPredictionScored(
	ctx context.Context,
	event events.PredictionScoredEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.PredictionScoredTopic,
		Key:   []byte(event.EmployeeID),
		Value: payload,
	})
}
