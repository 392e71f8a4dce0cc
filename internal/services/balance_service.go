package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// BalanceService refreshes the stored derived balances after ledger
// mutations. Replay over the transactions stays authoritative; the stored
// copy only spares readers a full replay. Fetch-then-write without locking:
// concurrent writers can interleave, and the worker's event-driven
// recompute converges the stored value.
type BalanceService struct {
	store store.Store
}

func NewBalanceService(st store.Store) *BalanceService {
	return &BalanceService{store: st}
}

// RecomputeCard replays the card's ledger and writes the fresh balance.
func (s *BalanceService) RecomputeCard(ctx context.Context, owner store.Principal, cardID string) (core.CreditCard, error) {
	card, err := s.store.GetCard(ctx, owner, cardID)
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("get card: %w", err)
	}
	txns, err := s.store.ListTransactions(ctx, owner)
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("list transactions: %w", err)
	}

	card.Balance = core.CardBalance(card, txns)
	if err := s.store.UpdateCard(ctx, owner, card); err != nil {
		return core.CreditCard{}, fmt.Errorf("update card balance: %w", err)
	}

	slog.InfoContext(ctx, "Recomputed card balance",
		"owner", owner,
		"card_id", cardID,
		"balance_cents", card.Balance.Cents)
	return card, nil
}

// RecomputeLoan replays the loan's payments and writes the fresh amount.
func (s *BalanceService) RecomputeLoan(ctx context.Context, owner store.Principal, loanID string) (core.BalanceSheetItem, error) {
	item, err := s.store.GetItem(ctx, owner, loanID)
	if err != nil {
		return core.BalanceSheetItem{}, fmt.Errorf("get item: %w", err)
	}
	if item.Category != core.ItemLoan {
		return item, nil
	}
	txns, err := s.store.ListTransactions(ctx, owner)
	if err != nil {
		return core.BalanceSheetItem{}, fmt.Errorf("list transactions: %w", err)
	}

	item.Amount = core.LoanBalance(item, txns)
	if err := s.store.UpdateItem(ctx, owner, item); err != nil {
		return core.BalanceSheetItem{}, fmt.Errorf("update loan balance: %w", err)
	}

	slog.InfoContext(ctx, "Recomputed loan balance",
		"owner", owner,
		"loan_id", loanID,
		"balance_cents", item.Amount.Cents)
	return item, nil
}

// RecomputeAll refreshes every derived balance for the principal.
func (s *BalanceService) RecomputeAll(ctx context.Context, owner store.Principal) error {
	cards, err := s.store.ListCards(ctx, owner)
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}
	for _, c := range cards {
		if _, err := s.RecomputeCard(ctx, owner, c.ID); err != nil {
			return err
		}
	}

	items, err := s.store.ListItems(ctx, owner)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	for _, i := range items {
		if i.Category != core.ItemLoan {
			continue
		}
		if _, err := s.RecomputeLoan(ctx, owner, i.ID); err != nil {
			return err
		}
	}
	return nil
}
