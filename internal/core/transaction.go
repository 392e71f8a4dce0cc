package core

import "errors"

var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMissingCardRef    = errors.New("credit card transaction without card id")
	ErrConflictingFlags  = errors.New("card payment, loan payment and cashback flags are mutually exclusive")
	ErrEmptyDescription  = errors.New("empty description")
	ErrDescriptionLength = errors.New("description too long (max 200 characters)")
)

// Transaction is one ledger entry. Type is derived from Category on every
// write; it is stored only as a convenience for queries.
type Transaction struct {
	ID            string
	Amount        Money
	Type          TransactionType
	Category      Category
	Description   string
	Date          Date
	CreditCard    bool
	CreditCardID  string
	IsCardPayment bool
	IsLoanPayment bool
	LoanID        string
	IsCashback    bool
}

// DeriveType re-derives the type from the category. Called on every create
// and on every category edit so the stored type can never drift.
func (t *Transaction) DeriveType() {
	t.Type = CategoryType(t.Category)
}

func (t *Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !KnownCategory(t.Category) {
		return ErrUnknownCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return ErrDescriptionLength
	}
	if t.CreditCard && t.CreditCardID == "" {
		return ErrMissingCardRef
	}
	exclusive := 0
	if t.IsCardPayment {
		exclusive++
	}
	if t.IsLoanPayment {
		exclusive++
	}
	if t.IsCashback {
		exclusive++
	}
	if exclusive > 1 {
		return ErrConflictingFlags
	}
	return nil
}
