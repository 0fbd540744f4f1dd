package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/models"
	"github.com/shashank9666/qwipo-backend/internal/repository"
)

// DefaultEventLimit bounds the events returned for a customer
const DefaultEventLimit = 50

// EventService records and reads back customer events
type EventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// RecordEvent stores a consumed event. Redelivered events are acknowledged
// without being stored twice.
func (s *EventService) RecordEvent(ctx context.Context, event *models.CustomerEvent) error {
	if !event.IsValid() {
		return &ValidationError{Message: fmt.Sprintf("invalid event %q of type %q", event.ID, event.Type)}
	}

	stored, err := s.eventRepo.Save(ctx, event)
	if err != nil {
		return &StoreError{Err: err}
	}

	if !stored {
		log.Debug().Str("event_id", event.ID).Msg("Duplicate event ignored")
		return nil
	}

	log.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Int("customer_id", event.CustomerID).
		Msg("Customer event recorded")
	return nil
}

// ListCustomerEvents returns the recorded events of a customer, newest first
func (s *EventService) ListCustomerEvents(ctx context.Context, customerID, limit int) ([]*models.CustomerEvent, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	events, err := s.eventRepo.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	return events, nil
}
