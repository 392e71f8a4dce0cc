// Package worker consumes ledger events and keeps derived state fresh: the
// stored card/loan balances first, the optional sheet mirror second.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/mirror"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

type BalanceWorker struct {
	store    store.Store
	balances *services.BalanceService
	mirror   mirror.Mirror
}

// NewBalanceWorker builds the worker. The mirror may be nil, in which case
// events only drive balance recomputes.
func NewBalanceWorker(st store.Store, balances *services.BalanceService, m mirror.Mirror) *BalanceWorker {
	return &BalanceWorker{store: st, balances: balances, mirror: m}
}

// HandleLedgerEvent recomputes the balances the event touches and mirrors
// the row. A recompute failure is returned so the delivery gets requeued; a
// mirror failure is only logged, the mirror is not part of correctness.
func (w *BalanceWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	owner := store.Principal(msg.Owner)

	if msg.CreditCardID != "" {
		_, err := w.balances.RecomputeCard(ctx, owner, msg.CreditCardID)
		// The card may have been deleted between publish and delivery.
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("recompute card %s: %w", msg.CreditCardID, err)
		}
	}
	if msg.LoanID != "" {
		_, err := w.balances.RecomputeLoan(ctx, owner, msg.LoanID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("recompute loan %s: %w", msg.LoanID, err)
		}
	}

	w.mirrorEvent(ctx, owner, msg)
	return nil
}

func (w *BalanceWorker) mirrorEvent(ctx context.Context, owner store.Principal, msg *amqp.LedgerEventMessage) {
	if w.mirror == nil {
		return
	}

	t, err := w.store.GetTransaction(ctx, owner, msg.TransactionID)
	if err != nil {
		if msg.Action != amqp.ActionDeleted || !errors.Is(err, store.ErrNotFound) {
			slog.ErrorContext(ctx, "Failed to load transaction for mirror",
				"owner", owner, "transaction_id", msg.TransactionID, "error", err)
			return
		}
		// Deleted rows are journaled from the event alone.
		t.ID = msg.TransactionID
		t.CreditCardID = msg.CreditCardID
		t.LoanID = msg.LoanID
	}

	ref, err := w.mirror.AppendEvent(ctx, msg.Owner, msg.Action, t)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to mirror ledger event",
			"owner", owner,
			"transaction_id", msg.TransactionID,
			"action", msg.Action,
			"error", err)
		return
	}

	slog.InfoContext(ctx, "Mirrored ledger event",
		"owner", owner,
		"transaction_id", msg.TransactionID,
		"action", msg.Action,
		"sheets_ref", ref)
}
