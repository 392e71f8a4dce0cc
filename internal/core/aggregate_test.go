package core

import "testing"

// The scenario from the monthly-summary contract: salary income, a card
// purchase and the payment that settles it.
func TestAggregateScenario(t *testing.T) {
	txns := []Transaction{
		tx("t1", TypeIncome, 100000, func(tr *Transaction) {
			tr.Category = CategorySalary
			tr.Date = NewDate(2024, 1, 1)
		}),
		tx("t2", TypeExpense, 20000, onCard("c1"), func(tr *Transaction) {
			tr.Category = CategoryGroceries
			tr.Date = NewDate(2024, 1, 5)
		}),
		tx("t3", TypeExpense, 20000, onCard("c1"), asCardPayment, func(tr *Transaction) {
			tr.Category = CategoryGroceries
			tr.Date = NewDate(2024, 1, 10)
		}),
	}

	totals := Aggregate(Classify(txns))

	if totals.TotalIncome.Cents != 100000 {
		t.Errorf("total income = %d, want 100000", totals.TotalIncome.Cents)
	}
	// The card payment is not an expense; only the purchase counts.
	if totals.TotalExpenses.Cents != 20000 {
		t.Errorf("total expenses = %d, want 20000", totals.TotalExpenses.Cents)
	}
	if totals.NetSavings.Cents != 80000 {
		t.Errorf("net savings = %d, want 80000", totals.NetSavings.Cents)
	}
	if totals.SavingsRate != 80 {
		t.Errorf("savings rate = %v, want 80", totals.SavingsRate)
	}
}

func TestAggregateSavingsRateGuard(t *testing.T) {
	tests := []struct {
		name string
		txns []Transaction
	}{
		{name: "no transactions", txns: nil},
		{name: "expenses only", txns: []Transaction{tx("e", TypeExpense, 5000)}},
		{name: "card purchases only", txns: []Transaction{tx("p", TypeExpense, 123, onCard("c"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Aggregate(Classify(tt.txns))
			if totals.SavingsRate != 0 {
				t.Errorf("savings rate with zero income = %v, want exactly 0", totals.SavingsRate)
			}
		})
	}
}

func TestAggregateBucketTotals(t *testing.T) {
	txns := []Transaction{
		tx("a", TypeIncome, 100),
		tx("b", TypeIncome, 200),
		tx("c", TypeExpense, 50),
		tx("d", TypeExpense, 70, onCard("c1")),
		tx("e", TypeExpense, 30, onCard("c1"), asCardPayment),
		tx("f", TypeIncome, 10, onCard("c1")),
	}
	totals := Aggregate(Classify(txns))

	if totals.TotalRegularIncome.Cents != 300 {
		t.Errorf("regular income = %d", totals.TotalRegularIncome.Cents)
	}
	if totals.TotalRegularExpenses.Cents != 50 {
		t.Errorf("regular expenses = %d", totals.TotalRegularExpenses.Cents)
	}
	if totals.TotalCreditCardPurchases.Cents != 70 {
		t.Errorf("card purchases = %d", totals.TotalCreditCardPurchases.Cents)
	}
	if totals.TotalCreditCardPayments.Cents != 30 {
		t.Errorf("card payments = %d", totals.TotalCreditCardPayments.Cents)
	}
	if totals.TotalCreditCardIncome.Cents != 10 {
		t.Errorf("card income = %d", totals.TotalCreditCardIncome.Cents)
	}
	if totals.TotalIncome.Cents != 310 || totals.TotalExpenses.Cents != 120 {
		t.Errorf("composite income/expenses = %d/%d, want 310/120",
			totals.TotalIncome.Cents, totals.TotalExpenses.Cents)
	}
	if totals.NetSavings.Cents != 190 {
		t.Errorf("net savings = %d, want 190", totals.NetSavings.Cents)
	}
}
