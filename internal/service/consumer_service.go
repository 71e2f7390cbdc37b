package service

import (
	"context"
	"encoding/json"

	"airport-assistant-be/internal/pkg/logger"
	"airport-assistant-be/pkg/events"
)

const moduleEvents = "EVENTS"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	bus *events.ChannelBus
	log logger.ILogger
}

// NewConsumerService drains the in-process bus into the audit log.
func NewConsumerService(bus *events.ChannelBus, log logger.ILogger) IConsumerService {
	return &consumerService{
		bus: bus,
		log: log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var env events.Envelope
			if err := json.Unmarshal(msg.Payload, &env); err != nil {
				cs.log.Warn(moduleEvents, "Dropping malformed event", map[string]interface{}{
					"message_id": msg.UUID,
					"error":      err.Error(),
				})
				msg.Ack() // Ack invalid messages to prevent infinite retry
				continue
			}

			cs.log.Info(moduleEvents, env.Type, map[string]interface{}{
				"message_id":  msg.UUID,
				"occurred_at": env.OccurredAt,
				"data":        env.Data,
			})
			msg.Ack()
		}
	}()

	return nil
}
