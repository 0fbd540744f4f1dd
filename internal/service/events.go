package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/models"
)

// EventPublisher delivers customer events to interested consumers
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *models.CustomerEvent) error
}

// publishEvent sends the event and logs failures. The mutation that produced
// the event has already been committed at this point.
func publishEvent(ctx context.Context, publisher EventPublisher, event *models.CustomerEvent) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishEvent(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("event_id", event.ID).
			Str("type", string(event.Type)).
			Int("customer_id", event.CustomerID).
			Msg("Failed to publish customer event")
	}
}
