package core

import "errors"

var (
	ErrNegativeLimit = errors.New("credit limit must not be negative")
	ErrEmptyName     = errors.New("empty name")
)

// CreditCard holds account metadata. Balance is derived: the stored copy is
// refreshed after writes but replay over the ledger stays authoritative.
type CreditCard struct {
	ID              string
	Name            string
	Limit           Money
	StartingBalance Money
	StartDate       Date
	Balance         Money
}

func (c *CreditCard) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Limit.IsNegative() {
		return ErrNegativeLimit
	}
	if err := c.StartDate.Validate(); err != nil {
		return err
	}
	return nil
}

// ItemType splits balance sheet entries into the two sides of the sheet.
type ItemType string

const (
	ItemAsset     ItemType = "asset"
	ItemLiability ItemType = "liability"
)

// ItemCategory refines a balance sheet item.
type ItemCategory string

const (
	ItemInvestment ItemCategory = "investment"
	ItemLoan       ItemCategory = "loan"
	ItemOther      ItemCategory = "other"
)

// BalanceSheetItem is a loan, investment or other holding. For loans the
// Amount is derived (InitialAmount minus recorded payments) and is not
// floored at zero: an overpaid loan shows a negative balance.
type BalanceSheetItem struct {
	ID            string
	Type          ItemType
	Category      ItemCategory
	Name          string
	Amount        Money
	InitialAmount Money
	InterestRate  *float64
	Date          Date
}

func (i *BalanceSheetItem) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}
	switch i.Type {
	case ItemAsset, ItemLiability:
	default:
		return errors.New("item type must be asset or liability")
	}
	switch i.Category {
	case ItemInvestment, ItemLoan, ItemOther:
	default:
		return errors.New("item category must be investment, loan or other")
	}
	return nil
}

// BudgetGoal is a monthly spending target for one expense category.
// A recurring goal propagates forward to the remaining months of its year
// until explicitly overridden; that expansion lives in the goal service,
// the stored rows are always concrete (category, year, month) triples.
type BudgetGoal struct {
	Category    Category
	Year        int
	Month       int
	Amount      Money
	IsRecurring bool
}

func (g *BudgetGoal) Validate() error {
	if !KnownCategory(g.Category) || CategoryType(g.Category) != TypeExpense {
		return ErrUnknownCategory
	}
	if g.Month < 1 || g.Month > 12 {
		return errors.New("month out of range")
	}
	if g.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
