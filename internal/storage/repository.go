// Package storage is the SQLite implementation of the store ports. Every
// table is keyed by owner id first; no query ever runs without a principal.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const transactionColumns = `id, amount_cents, type, category, description, date,
	credit_card, credit_card_id, is_card_payment, is_loan_payment, loan_id, is_cashback`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var date string
	err := row.Scan(&t.ID, &t.Amount.Cents, &t.Type, &t.Category, &t.Description,
		&date, &t.CreditCard, &t.CreditCardID, &t.IsCardPayment,
		&t.IsLoanPayment, &t.LoanID, &t.IsCashback)
	if err != nil {
		return core.Transaction{}, err
	}
	if t.Date, err = core.ParseDate(date); err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, owner store.Principal, t core.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (owner_id, `+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		owner, t.ID, t.Amount.Cents, t.Type, t.Category, t.Description,
		t.Date.Format(), t.CreditCard, t.CreditCardID, t.IsCardPayment,
		t.IsLoanPayment, t.LoanID, t.IsCashback)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, owner store.Principal, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE owner_id = ? AND id = ?`, owner, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, owner store.Principal) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE owner_id = ? ORDER BY date ASC, id ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, owner store.Principal, t core.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET amount_cents = ?, type = ?, category = ?,
			description = ?, date = ?, credit_card = ?, credit_card_id = ?,
			is_card_payment = ?, is_loan_payment = ?, loan_id = ?, is_cashback = ?
		WHERE owner_id = ? AND id = ?`,
		t.Amount.Cents, t.Type, t.Category, t.Description, t.Date.Format(),
		t.CreditCard, t.CreditCardID, t.IsCardPayment, t.IsLoanPayment,
		t.LoanID, t.IsCashback, owner, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, owner store.Principal, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE owner_id = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) CreateCard(ctx context.Context, owner store.Principal, c core.CreditCard) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_cards (owner_id, id, name, limit_cents,
			starting_balance_cents, start_date, balance_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		owner, c.ID, c.Name, c.Limit.Cents, c.StartingBalance.Cents,
		c.StartDate.Format(), c.Balance.Cents)
	if err != nil {
		return fmt.Errorf("create card: %w", err)
	}
	return nil
}

func scanCard(row interface{ Scan(...any) error }) (core.CreditCard, error) {
	var c core.CreditCard
	var startDate string
	err := row.Scan(&c.ID, &c.Name, &c.Limit.Cents, &c.StartingBalance.Cents,
		&startDate, &c.Balance.Cents)
	if err != nil {
		return core.CreditCard{}, err
	}
	if c.StartDate, err = core.ParseDate(startDate); err != nil {
		return core.CreditCard{}, fmt.Errorf("card %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *SQLiteStore) GetCard(ctx context.Context, owner store.Principal, id string) (core.CreditCard, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, limit_cents, starting_balance_cents, start_date, balance_cents
		FROM credit_cards WHERE owner_id = ? AND id = ?`, owner, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CreditCard{}, store.ErrNotFound
	}
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("get card: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) ListCards(ctx context.Context, owner store.Principal) ([]core.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, limit_cents, starting_balance_cents, start_date, balance_cents
		FROM credit_cards WHERE owner_id = ? ORDER BY name ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var out []core.CreditCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdateCard(ctx context.Context, owner store.Principal, c core.CreditCard) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE credit_cards SET name = ?, limit_cents = ?,
			starting_balance_cents = ?, start_date = ?, balance_cents = ?
		WHERE owner_id = ? AND id = ?`,
		c.Name, c.Limit.Cents, c.StartingBalance.Cents, c.StartDate.Format(),
		c.Balance.Cents, owner, c.ID)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) DeleteCard(ctx context.Context, owner store.Principal, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM credit_cards WHERE owner_id = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) CreateItem(ctx context.Context, owner store.Principal, i core.BalanceSheetItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO balance_sheet_items (owner_id, id, type, category, name,
			amount_cents, initial_amount_cents, interest_rate, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		owner, i.ID, i.Type, i.Category, i.Name, i.Amount.Cents,
		i.InitialAmount.Cents, i.InterestRate, itemDate(i))
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// itemDate stores the zero date as an empty string rather than year 1.
func itemDate(i core.BalanceSheetItem) string {
	if i.Date.IsZero() {
		return ""
	}
	return i.Date.Format()
}

func scanItem(row interface{ Scan(...any) error }) (core.BalanceSheetItem, error) {
	var i core.BalanceSheetItem
	var date string
	err := row.Scan(&i.ID, &i.Type, &i.Category, &i.Name, &i.Amount.Cents,
		&i.InitialAmount.Cents, &i.InterestRate, &date)
	if err != nil {
		return core.BalanceSheetItem{}, err
	}
	if date != "" {
		if i.Date, err = core.ParseDate(date); err != nil {
			return core.BalanceSheetItem{}, fmt.Errorf("item %s: %w", i.ID, err)
		}
	}
	return i, nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, owner store.Principal, id string) (core.BalanceSheetItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, category, name, amount_cents, initial_amount_cents,
			interest_rate, date
		FROM balance_sheet_items WHERE owner_id = ? AND id = ?`, owner, id)
	i, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BalanceSheetItem{}, store.ErrNotFound
	}
	if err != nil {
		return core.BalanceSheetItem{}, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

func (s *SQLiteStore) ListItems(ctx context.Context, owner store.Principal) ([]core.BalanceSheetItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, category, name, amount_cents, initial_amount_cents,
			interest_rate, date
		FROM balance_sheet_items WHERE owner_id = ? ORDER BY name ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []core.BalanceSheetItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdateItem(ctx context.Context, owner store.Principal, i core.BalanceSheetItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE balance_sheet_items SET type = ?, category = ?, name = ?,
			amount_cents = ?, initial_amount_cents = ?, interest_rate = ?, date = ?
		WHERE owner_id = ? AND id = ?`,
		i.Type, i.Category, i.Name, i.Amount.Cents, i.InitialAmount.Cents,
		i.InterestRate, itemDate(i), owner, i.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) DeleteItem(ctx context.Context, owner store.Principal, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM balance_sheet_items WHERE owner_id = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) UpsertGoal(ctx context.Context, owner store.Principal, g core.BudgetGoal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_goals (owner_id, category, year, month, amount_cents, is_recurring)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, category, year, month)
		DO UPDATE SET amount_cents = excluded.amount_cents,
			is_recurring = excluded.is_recurring`,
		owner, g.Category, g.Year, g.Month, g.Amount.Cents, g.IsRecurring)
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListGoals(ctx context.Context, owner store.Principal, year int) ([]core.BudgetGoal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, year, month, amount_cents, is_recurring
		FROM budget_goals WHERE owner_id = ? AND year = ?
		ORDER BY month ASC, category ASC`, owner, year)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.BudgetGoal
	for rows.Next() {
		var g core.BudgetGoal
		if err := rows.Scan(&g.Category, &g.Year, &g.Month, &g.Amount.Cents, &g.IsRecurring); err != nil {
			return nil, fmt.Errorf("list goals: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteGoal(ctx context.Context, owner store.Principal, category core.Category, year, month int) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM budget_goals
		WHERE owner_id = ? AND category = ? AND year = ? AND month = ?`,
		owner, category, year, month)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
