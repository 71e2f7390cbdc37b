package service

import (
	"context"

	"airport-assistant-be/internal/pkg/logger"
	"airport-assistant-be/pkg/events"
)

// publishEvent is best effort: a failed publish is logged and never fails the request.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn(moduleEvents, "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
