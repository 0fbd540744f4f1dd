package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/models"
)

// occurredAtLayout keeps every stored timestamp the same width so text
// ordering matches time ordering
const occurredAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type eventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new customer event repository
func NewEventRepository(db *database.DB) EventRepository {
	return &eventRepository{db: db}
}

// Save stores an event, ignoring redeliveries of an event id already stored
func (r *eventRepository) Save(ctx context.Context, event *models.CustomerEvent) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO customer_events (id, type, customer_id, address_id, occurred_at, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`)

	var payload interface{}
	if len(event.Payload) > 0 {
		payload = string(event.Payload)
	}

	result, err := r.db.ExecContext(
		ctx,
		query,
		event.ID,
		string(event.Type),
		event.CustomerID,
		event.AddressID,
		event.OccurredAt.UTC().Format(occurredAtLayout),
		payload,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save customer event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// ListByCustomer returns the most recent events of a customer, newest first
func (r *eventRepository) ListByCustomer(ctx context.Context, customerID, limit int) ([]*models.CustomerEvent, error) {
	if limit <= 0 || limit > MaxEventLimit {
		limit = MaxEventLimit
	}

	query := r.db.Rebind(`
		SELECT id, type, customer_id, address_id, occurred_at, payload
		FROM customer_events
		WHERE customer_id = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`)

	rows, err := r.db.QueryContext(ctx, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer events: %w", err)
	}
	defer rows.Close()

	events := []*models.CustomerEvent{}
	for rows.Next() {
		event := &models.CustomerEvent{}
		var eventType string
		var addressID sql.NullInt64
		var occurredAt string
		var payload sql.NullString

		if err := rows.Scan(&event.ID, &eventType, &event.CustomerID, &addressID, &occurredAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan customer event: %w", err)
		}

		event.Type = models.EventType(eventType)
		if addressID.Valid {
			id := int(addressID.Int64)
			event.AddressID = &id
		}
		if t, err := time.Parse(time.RFC3339Nano, occurredAt); err == nil {
			event.OccurredAt = t
		}
		if payload.Valid {
			event.Payload = []byte(payload.String)
		}

		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customer events: %w", err)
	}

	return events, nil
}
