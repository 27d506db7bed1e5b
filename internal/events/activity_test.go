package events_test

import (
	"context"
	"errors"
	"testing"

	"daybooker/config"
	"daybooker/infras/kafka"
	kafkaMocks "daybooker/infras/kafka/mocks"
	"daybooker/internal/domains/activitylog/model/dto"
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	"daybooker/internal/events"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cfg      *config.Config
	kafka    *kafkaMocks.MockClient
	activity *activityMocks.MockActivityLog
	consumer *events.ActivityConsumer
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.ConsumerGroup = "daybooker-worker"
	cfg.Kafka.Topics.Activity = "daybooker.activity"

	f := &fixture{
		cfg:      cfg,
		kafka:    kafkaMocks.NewMockClient(ctrl),
		activity: activityMocks.NewMockActivityLog(ctrl),
	}

	f.consumer = events.NewActivityConsumer(cfg, f.kafka, f.activity)

	return f
}

func message(t *testing.T, event dto.Event) kafkaGo.Message {
	msg, err := (&kafka.Message{Key: event.EntityID, Value: event}).ToKafkaMessage()
	assert.NoError(t, err)

	return msg
}

func TestActivityConsumer_Handle(t *testing.T) {
	event := dto.Event{ID: "e1", UserID: "u1", Action: dto.ActionBookingCreated, Entity: "booking", EntityID: "b1"}

	t.Run("stores event", func(t *testing.T) {
		f := newFixture(t)

		f.activity.EXPECT().Store(gomock.Any(), event).Return(nil)

		assert.NoError(t, f.consumer.Handle(context.Background(), message(t, event)))
	})

	t.Run("store failure is returned to the consumer", func(t *testing.T) {
		f := newFixture(t)

		f.activity.EXPECT().Store(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		assert.Error(t, f.consumer.Handle(context.Background(), message(t, event)))
	})

	t.Run("malformed payload is dropped", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.consumer.Handle(context.Background(), kafkaGo.Message{Value: []byte("{not json")}))
	})

	t.Run("incomplete event is dropped", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.consumer.Handle(context.Background(), message(t, dto.Event{Entity: "booking"})))
	})
}

func TestActivityConsumer_Run(t *testing.T) {
	t.Run("consumes the activity topic", func(t *testing.T) {
		f := newFixture(t)

		f.kafka.EXPECT().Consume(gomock.Any(), "daybooker-worker", "daybooker.activity", gomock.Any())

		f.consumer.Run(context.Background())
	})

	t.Run("disabled without brokers", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Kafka.Brokers = nil

		f.consumer.Run(context.Background())
	})
}
