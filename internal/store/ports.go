// Package store defines the persistence ports of the engine. Every call
// takes the owning principal explicitly; nothing in the system reads a
// signed-in user from ambient state. Implementations guarantee only that a
// read after a write from the same caller reflects that write.
package store

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned for any entity lookup that matches nothing.
var ErrNotFound = errors.New("not found")

// Principal is the opaque owner id scoping every collection.
type Principal string

type TransactionStore interface {
	CreateTransaction(ctx context.Context, owner Principal, t core.Transaction) error
	GetTransaction(ctx context.Context, owner Principal, id string) (core.Transaction, error)
	// ListTransactions returns the full ledger for the principal ordered
	// by date ascending. Range filtering happens in the report layer
	// because derived balances need history outside any requested range.
	ListTransactions(ctx context.Context, owner Principal) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, owner Principal, t core.Transaction) error
	DeleteTransaction(ctx context.Context, owner Principal, id string) error
}

type CardStore interface {
	CreateCard(ctx context.Context, owner Principal, c core.CreditCard) error
	GetCard(ctx context.Context, owner Principal, id string) (core.CreditCard, error)
	ListCards(ctx context.Context, owner Principal) ([]core.CreditCard, error)
	UpdateCard(ctx context.Context, owner Principal, c core.CreditCard) error
	DeleteCard(ctx context.Context, owner Principal, id string) error
}

type ItemStore interface {
	CreateItem(ctx context.Context, owner Principal, i core.BalanceSheetItem) error
	GetItem(ctx context.Context, owner Principal, id string) (core.BalanceSheetItem, error)
	ListItems(ctx context.Context, owner Principal) ([]core.BalanceSheetItem, error)
	UpdateItem(ctx context.Context, owner Principal, i core.BalanceSheetItem) error
	DeleteItem(ctx context.Context, owner Principal, id string) error
}

// GoalStore keys goals by (category, year, month); writes are upserts.
type GoalStore interface {
	UpsertGoal(ctx context.Context, owner Principal, g core.BudgetGoal) error
	ListGoals(ctx context.Context, owner Principal, year int) ([]core.BudgetGoal, error)
	DeleteGoal(ctx context.Context, owner Principal, category core.Category, year, month int) error
}

// Store is the full persistence surface the services depend on.
type Store interface {
	TransactionStore
	CardStore
	ItemStore
	GoalStore
}
