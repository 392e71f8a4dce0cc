package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEventMessage is published after a transaction write commits. It
// carries references only; the worker refetches the affected entities so a
// stale message can never overwrite fresher state.
type LedgerEventMessage struct {
	Owner         string    `json:"owner"`
	TransactionID string    `json:"transactionId"`
	Action        string    `json:"action"`
	CreditCardID  string    `json:"creditCardId,omitempty"`
	LoanID        string    `json:"loanId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(owner, transactionID, action, creditCardID, loanID string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Owner:         owner,
		TransactionID: transactionID,
		Action:        action,
		CreditCardID:  creditCardID,
		LoanID:        loanID,
		Timestamp:     time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
