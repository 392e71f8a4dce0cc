package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/csvio"
	"fintrack/internal/store"
)

// ImportResult counts what happened to each input row.
type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []csvio.RowError `json:"errors,omitempty"`
}

// ImportService turns a CSV file into transactions, one row at a time. A
// bad row is counted and skipped, never fatal. Credit cards referenced by
// name that the principal does not have yet are created with zero limit and
// zero starting balance as a documented side effect.
type ImportService struct {
	ledger *LedgerService
	store  store.Store
}

func NewImportService(ledger *LedgerService, st store.Store) *ImportService {
	return &ImportService{ledger: ledger, store: st}
}

func (s *ImportService) Import(ctx context.Context, owner store.Principal, text string) (ImportResult, error) {
	rows, dropped, err := csvio.ParseImport(text)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse import: %w", err)
	}

	result := ImportResult{Failed: len(dropped), Errors: dropped}

	cards, err := s.store.ListCards(ctx, owner)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list cards: %w", err)
	}
	cardByName := make(map[string]string, len(cards))
	for _, c := range cards {
		cardByName[c.Name] = c.ID
	}

	// An auto-created card starts at the earliest row referencing it, so
	// the balance replay covers every imported row even when the file
	// arrives newest-first.
	firstUse := make(map[string]core.Date)
	for _, row := range rows {
		if !row.CreditCard {
			continue
		}
		if d, ok := firstUse[row.CreditCardName]; !ok || row.Date.Time.Before(d.Time) {
			firstUse[row.CreditCardName] = row.Date
		}
	}

	for _, row := range rows {
		t := core.Transaction{
			Amount:        row.Amount,
			Category:      row.Category,
			Description:   row.Description,
			Date:          row.Date,
			CreditCard:    row.CreditCard,
			IsCardPayment: row.IsCardPayment,
		}
		if row.CreditCard {
			cardID, ok := cardByName[row.CreditCardName]
			if !ok {
				cardID, err = s.autoCreateCard(ctx, owner, row.CreditCardName, firstUse[row.CreditCardName])
				if err != nil {
					slog.ErrorContext(ctx, "Failed to auto-create card",
						"owner", owner, "card_name", row.CreditCardName, "error", err)
					result.Failed++
					continue
				}
				cardByName[row.CreditCardName] = cardID
			}
			t.CreditCardID = cardID
		}

		if _, err := s.ledger.CreateTransaction(ctx, owner, t); err != nil {
			slog.ErrorContext(ctx, "Failed to import row",
				"owner", owner, "date", row.Date.Format(), "error", err)
			result.Failed++
			continue
		}
		result.Imported++
	}

	slog.InfoContext(ctx, "Import finished",
		"owner", owner,
		"imported", result.Imported,
		"failed", result.Failed)
	return result, nil
}

func (s *ImportService) autoCreateCard(ctx context.Context, owner store.Principal, name string, startDate core.Date) (string, error) {
	card := core.CreditCard{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: startDate,
	}
	if err := s.store.CreateCard(ctx, owner, card); err != nil {
		return "", fmt.Errorf("create card %q: %w", name, err)
	}
	slog.InfoContext(ctx, "Auto-created credit card from import",
		"owner", owner,
		"card_id", card.ID,
		"card_name", card.Name)
	return card.ID, nil
}
