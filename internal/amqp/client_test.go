package amqp

import (
	"testing"
	"time"
)

func TestNewLedgerEventMessage(t *testing.T) {
	msg := NewLedgerEventMessage("owner-1", "tx-1", ActionCreated, "card-1", "")

	if msg.Owner != "owner-1" || msg.TransactionID != "tx-1" {
		t.Errorf("message = %+v", msg)
	}
	if msg.Action != ActionCreated {
		t.Errorf("action = %q, want %q", msg.Action, ActionCreated)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("timestamp should be recent")
	}
}

func TestLedgerEventMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &LedgerEventMessage{
		Owner:         "owner-1",
		TransactionID: "tx-9",
		Action:        ActionDeleted,
		LoanID:        "loan-2",
		Timestamp:     timestamp,
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := LedgerEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("LedgerEventMessageFromJSON() error = %v", err)
	}

	if parsed.Owner != msg.Owner || parsed.TransactionID != msg.TransactionID ||
		parsed.Action != msg.Action || parsed.LoanID != msg.LoanID {
		t.Errorf("parsed = %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("parsed timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestLedgerEventMessage_InvalidJSON(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte(`{"owner": 42`)); err == nil {
		t.Error("LedgerEventMessageFromJSON() should fail with invalid JSON")
	}
}
