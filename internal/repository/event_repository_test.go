package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shashank9666/qwipo-backend/internal/models"
)

func TestEventRepository_SaveIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	event := models.NewCustomerEvent(models.EventCustomerCreated, 1, nil, map[string]string{"first_name": "John"})

	stored, err := repo.Save(ctx, event)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !stored {
		t.Error("expected first save to store the event")
	}

	stored, err = repo.Save(ctx, event)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if stored {
		t.Error("expected redelivered event to be ignored")
	}
}

func TestEventRepository_ListByCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	addressID := 5
	older := models.NewCustomerEvent(models.EventCustomerCreated, 1, nil, nil)
	older.OccurredAt = time.Now().UTC().Add(-time.Minute)
	newer := models.NewCustomerEvent(models.EventAddressCreated, 1, &addressID, map[string]string{"city": "Pune"})
	unrelated := models.NewCustomerEvent(models.EventCustomerCreated, 2, nil, nil)

	for _, e := range []*models.CustomerEvent{older, newer, unrelated} {
		if _, err := repo.Save(ctx, e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	events, err := repo.ListByCustomer(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListByCustomer failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != newer.ID {
		t.Errorf("expected newest event first, got %s", events[0].Type)
	}
	if events[0].AddressID == nil || *events[0].AddressID != 5 {
		t.Errorf("unexpected address id %v", events[0].AddressID)
	}
	if string(events[0].Payload) != `{"city":"Pune"}` {
		t.Errorf("unexpected payload %s", events[0].Payload)
	}
	if events[1].AddressID != nil || events[1].Payload != nil {
		t.Errorf("expected no address or payload, got %+v", events[1])
	}
	if events[1].OccurredAt.IsZero() {
		t.Error("expected occurred_at to be parsed")
	}
}

func TestEventRepository_ListByCustomer_OrdersWithinSecond(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 5, 0, time.UTC)
	offsets := []time.Duration{0, 100 * time.Millisecond, 120 * time.Millisecond, 500 * time.Millisecond}

	saved := make([]*models.CustomerEvent, 0, len(offsets))
	for _, offset := range offsets {
		e := models.NewCustomerEvent(models.EventCustomerUpdated, 3, nil, nil)
		e.OccurredAt = base.Add(offset)
		if _, err := repo.Save(ctx, e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		saved = append(saved, e)
	}

	events, err := repo.ListByCustomer(ctx, 3, 10)
	if err != nil {
		t.Fatalf("ListByCustomer failed: %v", err)
	}
	if len(events) != len(saved) {
		t.Fatalf("expected %d events, got %d", len(saved), len(events))
	}
	for i, e := range events {
		want := saved[len(saved)-1-i]
		if e.ID != want.ID {
			t.Errorf("position %d: expected event at %s, got %s", i, want.OccurredAt.Format(time.RFC3339Nano), e.OccurredAt.Format(time.RFC3339Nano))
		}
	}
	if !events[len(events)-1].OccurredAt.Equal(base) {
		t.Errorf("expected oldest event at %s, got %s", base, events[len(events)-1].OccurredAt)
	}
}
