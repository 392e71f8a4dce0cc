package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

// Wire shapes for the CRUD routes. The core types carry no serialization
// concerns, so the API layer owns the JSON field names.

type transactionJSON struct {
	ID            string     `json:"id"`
	Amount        core.Money `json:"amount"`
	Type          string     `json:"type,omitempty"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Date          core.Date  `json:"date"`
	CreditCard    bool       `json:"creditCard"`
	CreditCardID  string     `json:"creditCardId,omitempty"`
	IsCardPayment bool       `json:"isCardPayment"`
	IsLoanPayment bool       `json:"isLoanPayment"`
	LoanID        string     `json:"loanId,omitempty"`
	IsCashback    bool       `json:"isCashback"`
}

func (j transactionJSON) toCore() core.Transaction {
	return core.Transaction{
		ID:            j.ID,
		Amount:        j.Amount,
		Category:      core.Category(j.Category),
		Description:   strings.TrimSpace(j.Description),
		Date:          j.Date,
		CreditCard:    j.CreditCard,
		CreditCardID:  j.CreditCardID,
		IsCardPayment: j.IsCardPayment,
		IsLoanPayment: j.IsLoanPayment,
		LoanID:        j.LoanID,
		IsCashback:    j.IsCashback,
	}
}

func transactionToJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:            t.ID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Category:      string(t.Category),
		Description:   t.Description,
		Date:          t.Date,
		CreditCard:    t.CreditCard,
		CreditCardID:  t.CreditCardID,
		IsCardPayment: t.IsCardPayment,
		IsLoanPayment: t.IsLoanPayment,
		LoanID:        t.LoanID,
		IsCashback:    t.IsCashback,
	}
}

type cardJSON struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Limit           core.Money `json:"limit"`
	StartingBalance core.Money `json:"startingBalance"`
	StartDate       core.Date  `json:"startDate"`
	Balance         core.Money `json:"balance"`
}

func (j cardJSON) toCore() core.CreditCard {
	return core.CreditCard{
		ID:              j.ID,
		Name:            strings.TrimSpace(j.Name),
		Limit:           j.Limit,
		StartingBalance: j.StartingBalance,
		StartDate:       j.StartDate,
		Balance:         j.Balance,
	}
}

func cardToJSON(c core.CreditCard) cardJSON {
	return cardJSON{
		ID:              c.ID,
		Name:            c.Name,
		Limit:           c.Limit,
		StartingBalance: c.StartingBalance,
		StartDate:       c.StartDate,
		Balance:         c.Balance,
	}
}

type itemJSON struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Category      string     `json:"category"`
	Name          string     `json:"name"`
	Amount        core.Money `json:"amount"`
	InitialAmount core.Money `json:"initialAmount"`
	InterestRate  *float64   `json:"interestRate,omitempty"`
	Date          core.Date  `json:"date"`
}

func (j itemJSON) toCore() core.BalanceSheetItem {
	return core.BalanceSheetItem{
		ID:            j.ID,
		Type:          core.ItemType(j.Type),
		Category:      core.ItemCategory(j.Category),
		Name:          strings.TrimSpace(j.Name),
		Amount:        j.Amount,
		InitialAmount: j.InitialAmount,
		InterestRate:  j.InterestRate,
		Date:          j.Date,
	}
}

func itemToJSON(i core.BalanceSheetItem) itemJSON {
	return itemJSON{
		ID:            i.ID,
		Type:          string(i.Type),
		Category:      string(i.Category),
		Name:          i.Name,
		Amount:        i.Amount,
		InitialAmount: i.InitialAmount,
		InterestRate:  i.InterestRate,
		Date:          i.Date,
	}
}

type goalJSON struct {
	Category    string     `json:"category"`
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	Amount      core.Money `json:"amount"`
	IsRecurring bool       `json:"isRecurring"`
}

func (j goalJSON) toCore() core.BudgetGoal {
	return core.BudgetGoal{
		Category:    core.Category(j.Category),
		Year:        j.Year,
		Month:       j.Month,
		Amount:      j.Amount,
		IsRecurring: j.IsRecurring,
	}
}

func goalToJSON(g core.BudgetGoal) goalJSON {
	return goalJSON{
		Category:    string(g.Category),
		Year:        g.Year,
		Month:       g.Month,
		Amount:      g.Amount,
		IsRecurring: g.IsRecurring,
	}
}

// parseRange reads the start/end query parameters, defaulting to the
// current calendar month when both are absent.
func parseRange(r *http.Request) (start, end core.Date, err error) {
	startStr := strings.TrimSpace(r.URL.Query().Get("start"))
	endStr := strings.TrimSpace(r.URL.Query().Get("end"))

	if startStr == "" && endStr == "" {
		today := core.DateOf(time.Now())
		return today.MonthStart(), today.MonthEnd(), nil
	}
	if startStr == "" || endStr == "" {
		return core.Date{}, core.Date{}, fmt.Errorf("start and end must be given together")
	}

	if start, err = core.ParseDate(startStr); err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("bad start date: %w", err)
	}
	if end, err = core.ParseDate(endStr); err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("bad end date: %w", err)
	}
	return start, end, nil
}

// parseYear reads the year query parameter, defaulting to the current year.
func parseYear(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad year %q", v)
	}
	return year, nil
}
