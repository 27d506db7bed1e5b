package events

import (
	"context"

	"daybooker/config"
	"daybooker/infras/kafka"
	"daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// ActivityConsumer persists activity events published by the API.
type ActivityConsumer struct {
	cfg      *config.Config
	kafka    kafka.Client
	activity activityService.ActivityLog
}

func NewActivityConsumer(cfg *config.Config, kafka kafka.Client, activity activityService.ActivityLog) *ActivityConsumer {
	return &ActivityConsumer{
		cfg:      cfg,
		kafka:    kafka,
		activity: activity,
	}
}

// Run blocks until ctx is done.
func (c *ActivityConsumer) Run(ctx context.Context) {
	if len(c.cfg.Kafka.Brokers) == 0 {
		log.Warn().Msg("No Kafka brokers configured, activity consumer disabled")

		return
	}

	log.Info().Str("topic", c.cfg.Kafka.Topics.Activity).Msg("Activity consumer started")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.Activity, c.Handle)
}

// Handle stores a single event. Undecodable messages are dropped.
func (c *ActivityConsumer) Handle(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[dto.Event](msg)
	if err != nil {
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("Dropping malformed activity event")

		return nil
	}

	if event.ID == "" || event.Action == "" {
		log.Warn().Int64("offset", msg.Offset).Msg("Dropping incomplete activity event")

		return nil
	}

	return c.activity.Store(ctx, event) //nolint:wrapcheck
}
