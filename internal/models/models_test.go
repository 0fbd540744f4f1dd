package models

import (
	"encoding/json"
	"testing"
)

func TestCustomer_HasRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		want     bool
	}{
		{"all fields", Customer{FirstName: "John", LastName: "Doe", PhoneNumber: "9876543210"}, true},
		{"missing first name", Customer{LastName: "Doe", PhoneNumber: "9876543210"}, false},
		{"missing last name", Customer{FirstName: "John", PhoneNumber: "9876543210"}, false},
		{"missing phone", Customer{FirstName: "John", LastName: "Doe"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.customer.HasRequiredFields(); got != tt.want {
				t.Errorf("HasRequiredFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomer_FullName(t *testing.T) {
	c := Customer{FirstName: "Alice", LastName: "Johnson"}
	if got := c.FullName(); got != "Alice Johnson" {
		t.Errorf("unexpected full name %q", got)
	}

	c = Customer{LastName: "Johnson"}
	if got := c.FullName(); got != "Johnson" {
		t.Errorf("unexpected full name %q", got)
	}
}

func TestCustomer_NullEmailMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Customer{ID: 1, FirstName: "A", LastName: "B", PhoneNumber: "1"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	value, ok := out["email"]
	if !ok {
		t.Fatal("expected email key in JSON")
	}
	if value != nil {
		t.Errorf("expected null email, got %v", value)
	}
}

func TestAddress_ApplyDefaults(t *testing.T) {
	a := Address{Street: "1 Main", City: "Pune", State: "MH", ZipCode: "411001"}
	a.ApplyDefaults()

	if a.AddressType != DefaultAddressType {
		t.Errorf("expected default type %q, got %q", DefaultAddressType, a.AddressType)
	}
	if a.IsPrimary {
		t.Error("is_primary should default to false")
	}

	a.AddressType = "work"
	a.ApplyDefaults()
	if a.AddressType != "work" {
		t.Errorf("explicit type overwritten: %q", a.AddressType)
	}
}

func TestNewCustomerEvent(t *testing.T) {
	addressID := 9
	event := NewCustomerEvent(EventAddressCreated, 3, &addressID, map[string]string{"city": "Delhi"})

	if !event.IsValid() {
		t.Fatalf("expected valid event, got %+v", event)
	}
	if event.CustomerID != 3 || event.AddressID == nil || *event.AddressID != 9 {
		t.Errorf("unexpected ids: %+v", event)
	}
	if string(event.Payload) != `{"city":"Delhi"}` {
		t.Errorf("unexpected payload %s", event.Payload)
	}

	other := NewCustomerEvent(EventAddressCreated, 3, &addressID, nil)
	if other.ID == event.ID {
		t.Error("event ids must be unique")
	}
	if other.Payload != nil {
		t.Errorf("expected no payload, got %s", other.Payload)
	}
}

func TestCustomerEvent_IsValid(t *testing.T) {
	event := NewCustomerEvent(EventCustomerDeleted, 1, nil, nil)

	event.Type = "customer.renamed"
	if event.IsValid() {
		t.Error("unknown type should be invalid")
	}

	event.Type = EventCustomerDeleted
	event.ID = "not-a-uuid"
	if event.IsValid() {
		t.Error("malformed id should be invalid")
	}
}
