package core

import "sort"

// CardBalance replays the ledger against a credit card: starting balance
// plus purchases, minus payments and income, over transactions referencing
// the card and dated on or after its start date. The fold is a pure linear
// sum, so ordering cannot change the result; transactions are still
// replayed in ascending date order to keep the accumulation usable for
// per-period projections later.
func CardBalance(card CreditCard, transactions []Transaction) Money {
	matched := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.CreditCard || t.CreditCardID != card.ID {
			continue
		}
		if t.Date.Time.Before(card.StartDate.Time) {
			continue
		}
		matched = append(matched, t)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Time.Before(matched[j].Date.Time)
	})

	balance := card.StartingBalance
	for _, t := range matched {
		if t.Type == TypeExpense && !t.IsCardPayment {
			balance = balance.Add(t.Amount)
		} else {
			// Payments and income both reduce what is owed.
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// LoanBalance computes a loan's remaining principal: initial amount minus
// the sum of loan-payment transactions referencing it. Loans have no
// purchase side, only a fixed principal and payments. The result is not
// floored at zero; overpayment shows as a negative balance.
func LoanBalance(item BalanceSheetItem, transactions []Transaction) Money {
	balance := item.InitialAmount
	for _, t := range transactions {
		if t.IsLoanPayment && t.LoanID == item.ID {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}
