package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReceiveBatchRequestBindsTimestamp(t *testing.T) {
	body := `{"quantity":50,"purchase_price":300,"timestamp":"2026-08-30T22:00:00Z"}`

	var req ReceiveBatchRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if req.ReceivedAt == nil {
		t.Fatal("timestamp was not bound; server would substitute now()")
	}

	want := time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC)
	if !req.ReceivedAt.Equal(want) {
		t.Errorf("want %v, got %v", want, *req.ReceivedAt)
	}
	if got := req.Quantity.Float64(); got != 50 {
		t.Errorf("quantity: want 50, got %v", got)
	}
}

func TestReceiveBatchRequestTimestampOptional(t *testing.T) {
	body := `{"quantity":10,"purchase_price":280}`

	var req ReceiveBatchRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if req.ReceivedAt != nil {
		t.Errorf("want nil timestamp, got %v", *req.ReceivedAt)
	}
}
