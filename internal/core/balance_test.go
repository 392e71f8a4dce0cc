package core

import "testing"

func testCard() CreditCard {
	return CreditCard{
		ID:              "c1",
		Name:            "Visa",
		Limit:           Money{Cents: 100000},
		StartingBalance: Money{Cents: 0},
		StartDate:       NewDate(2024, 1, 1),
	}
}

func TestCardBalanceNoTransactions(t *testing.T) {
	card := testCard()
	card.StartingBalance = Money{Cents: 4200}
	got := CardBalance(card, nil)
	if got.Cents != 4200 {
		t.Errorf("balance with no transactions = %d, want starting balance 4200", got.Cents)
	}
}

func TestCardBalanceReplay(t *testing.T) {
	card := testCard()
	txns := []Transaction{
		// Purchase then payment, per the monthly-summary scenario.
		tx("t2", TypeExpense, 20000, onCard("c1")),
		tx("t3", TypeExpense, 20000, onCard("c1"), asCardPayment),
	}
	if got := CardBalance(card, txns); got.Cents != 0 {
		t.Errorf("balance = %d, want 0 (200.00 purchase - 200.00 payment)", got.Cents)
	}
}

func TestCardBalanceOrderInvariant(t *testing.T) {
	card := testCard()
	forward := []Transaction{
		tx("a", TypeExpense, 1000, onCard("c1"), func(t *Transaction) { t.Date = NewDate(2024, 1, 2) }),
		tx("b", TypeExpense, 300, onCard("c1"), asCardPayment, func(t *Transaction) { t.Date = NewDate(2024, 1, 5) }),
		tx("c", TypeIncome, 50, onCard("c1"), func(t *Transaction) { t.Date = NewDate(2024, 1, 9) }),
	}
	reversed := []Transaction{forward[2], forward[1], forward[0]}

	want := int64(1000 - 300 - 50)
	if got := CardBalance(card, forward); got.Cents != want {
		t.Errorf("forward order balance = %d, want %d", got.Cents, want)
	}
	if got := CardBalance(card, reversed); got.Cents != want {
		t.Errorf("reversed order balance = %d, want %d", got.Cents, want)
	}
}

func TestCardBalanceFilters(t *testing.T) {
	card := testCard()
	card.StartDate = NewDate(2024, 2, 1)
	txns := []Transaction{
		// Before start date: ignored.
		tx("old", TypeExpense, 9999, onCard("c1"), func(t *Transaction) { t.Date = NewDate(2024, 1, 15) }),
		// Other card: ignored.
		tx("other", TypeExpense, 5000, onCard("c2"), func(t *Transaction) { t.Date = NewDate(2024, 2, 10) }),
		// Not a card transaction: ignored.
		tx("cash", TypeExpense, 700, func(t *Transaction) { t.Date = NewDate(2024, 2, 10) }),
		tx("keep", TypeExpense, 1500, onCard("c1"), func(t *Transaction) { t.Date = NewDate(2024, 2, 10) }),
	}
	if got := CardBalance(card, txns); got.Cents != 1500 {
		t.Errorf("balance = %d, want 1500", got.Cents)
	}
}

func TestCardBalanceDoesNotMutateInput(t *testing.T) {
	card := testCard()
	txns := []Transaction{
		tx("z", TypeExpense, 100, onCard("c1"), func(t *Transaction) { t.Date = NewDate(2024, 3, 1) }),
		tx("a", TypeExpense, 100, onCard("c1"), func(t *Transaction) { t.Date = NewDate(2024, 1, 1) }),
	}
	CardBalance(card, txns)
	if txns[0].ID != "z" || txns[1].ID != "a" {
		t.Errorf("input slice reordered: %v", ids(txns))
	}
}

func TestLoanBalance(t *testing.T) {
	loan := BalanceSheetItem{
		ID:            "l1",
		Type:          ItemLiability,
		Category:      ItemLoan,
		Name:          "Car loan",
		InitialAmount: Money{Cents: 500000},
	}
	payment := func(id string, cents int64) Transaction {
		return tx(id, TypeExpense, cents, func(t *Transaction) {
			t.IsLoanPayment = true
			t.LoanID = "l1"
		})
	}

	t.Run("no payments", func(t *testing.T) {
		if got := LoanBalance(loan, nil); got.Cents != 500000 {
			t.Errorf("balance = %d, want initial 500000", got.Cents)
		}
	})

	t.Run("payments reduce principal", func(t *testing.T) {
		txns := []Transaction{payment("p1", 100000), payment("p2", 150000)}
		if got := LoanBalance(loan, txns); got.Cents != 250000 {
			t.Errorf("balance = %d, want 250000", got.Cents)
		}
	})

	t.Run("overpayment goes negative", func(t *testing.T) {
		txns := []Transaction{payment("p1", 600000)}
		if got := LoanBalance(loan, txns); got.Cents != -100000 {
			t.Errorf("balance = %d, want -100000 (not floored)", got.Cents)
		}
	})

	t.Run("other loans ignored", func(t *testing.T) {
		other := payment("p1", 100000)
		other.LoanID = "l2"
		if got := LoanBalance(loan, []Transaction{other}); got.Cents != 500000 {
			t.Errorf("balance = %d, want 500000", got.Cents)
		}
	})
}
