package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

// EventPublisher is the slice of the AMQP client the ledger needs. Nil is
// a valid publisher; events are then skipped and balances refreshed inline.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
}

// LedgerService owns transaction writes: validation, persistence, and the
// change event that drives the async balance recompute. The write itself
// never fails because of the event pipeline.
type LedgerService struct {
	store     store.Store
	publisher EventPublisher
	balances  *BalanceService
}

func NewLedgerService(st store.Store, publisher EventPublisher, balances *BalanceService) *LedgerService {
	return &LedgerService{store: st, publisher: publisher, balances: balances}
}

// CreateTransaction validates and persists one entry, then announces it.
func (s *LedgerService) CreateTransaction(ctx context.Context, owner store.Principal, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.DeriveType()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	if err := s.store.CreateTransaction(ctx, owner, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.announce(ctx, owner, t, amqp.ActionCreated)
	return t, nil
}

// UpdateTransaction re-validates and overwrites one entry.
func (s *LedgerService) UpdateTransaction(ctx context.Context, owner store.Principal, t core.Transaction) (core.Transaction, error) {
	t.DeriveType()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	if err := s.store.UpdateTransaction(ctx, owner, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.announce(ctx, owner, t, amqp.ActionUpdated)
	return t, nil
}

// DeleteTransaction removes one entry. The entry is fetched first so the
// delete event still carries its card/loan references.
func (s *LedgerService) DeleteTransaction(ctx context.Context, owner store.Principal, id string) error {
	t, err := s.store.GetTransaction(ctx, owner, id)
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}
	if err := s.store.DeleteTransaction(ctx, owner, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.announce(ctx, owner, t, amqp.ActionDeleted)
	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, owner store.Principal, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, owner, id)
}

func (s *LedgerService) ListTransactions(ctx context.Context, owner store.Principal) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, owner)
}

// announce publishes the change event, or falls back to a synchronous
// recompute when no broker is wired (dev backend, tests). Either path is
// best-effort: the committed write is never rolled back for it.
func (s *LedgerService) announce(ctx context.Context, owner store.Principal, t core.Transaction, action string) {
	if s.publisher == nil {
		s.recomputeInline(ctx, owner, t)
		return
	}

	msg := amqp.NewLedgerEventMessage(string(owner), t.ID, action, t.CreditCardID, t.LoanID)
	if err := s.publisher.PublishLedgerEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"owner", owner,
			"transaction_id", t.ID,
			"action", action,
			"error", err)
		s.recomputeInline(ctx, owner, t)
	}
}

func (s *LedgerService) recomputeInline(ctx context.Context, owner store.Principal, t core.Transaction) {
	if s.balances == nil {
		return
	}
	if t.CreditCardID != "" {
		if _, err := s.balances.RecomputeCard(ctx, owner, t.CreditCardID); err != nil {
			slog.ErrorContext(ctx, "Inline card recompute failed",
				"owner", owner, "card_id", t.CreditCardID, "error", err)
		}
	}
	if t.LoanID != "" {
		if _, err := s.balances.RecomputeLoan(ctx, owner, t.LoanID); err != nil {
			slog.ErrorContext(ctx, "Inline loan recompute failed",
				"owner", owner, "loan_id", t.LoanID, "error", err)
		}
	}
}
