package service

import (
	"encoding/json"
	"testing"
)

func TestAddressRequest_DecodesLooseScalars(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantZip     string
		wantPrimary bool
	}{
		{"string values", `{"zip_code":"411001","is_primary":true}`, "411001", true},
		{"numeric zip", `{"zip_code":411001}`, "411001", false},
		{"primary as one", `{"zip_code":"1","is_primary":1}`, "1", true},
		{"primary as zero", `{"zip_code":"1","is_primary":0}`, "1", false},
		{"primary as text", `{"zip_code":"1","is_primary":"yes"}`, "1", true},
		{"nulls", `{"zip_code":null,"is_primary":null}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddressRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			address := req.toModel()
			AssertEqual(t, address.ZipCode, tt.wantZip)
			AssertEqual(t, address.IsPrimary, tt.wantPrimary)
		})
	}
}

func TestCustomerRequest_NumericPhone(t *testing.T) {
	var req CustomerRequest
	err := json.Unmarshal([]byte(`{"first_name":"John","last_name":"Doe","phone_number":9876543210}`), &req)
	AssertNoError(t, err)
	AssertNoError(t, req.Validate())
	AssertEqual(t, req.toModel().PhoneNumber, "9876543210")
}

func TestCustomerRequest_FalseIsMissing(t *testing.T) {
	var req CustomerRequest
	err := json.Unmarshal([]byte(`{"first_name":"John","last_name":false,"phone_number":"1"}`), &req)
	AssertNoError(t, err)
	if req.Validate() == nil {
		t.Fatal("expected validation error for a false last name")
	}
}

func TestRequest_RejectsObjects(t *testing.T) {
	var req AddressRequest
	if err := json.Unmarshal([]byte(`{"zip_code":{"code":1}}`), &req); err == nil {
		t.Fatal("expected decode error for an object zip code")
	}
	if err := json.Unmarshal([]byte(`{"is_primary":[1]}`), &req); err == nil {
		t.Fatal("expected decode error for an array flag")
	}
}
