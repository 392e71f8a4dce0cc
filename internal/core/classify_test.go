package core

import "testing"

func tx(id string, typ TransactionType, cents int64, mods ...func(*Transaction)) Transaction {
	t := Transaction{
		ID:     id,
		Amount: Money{Cents: cents},
		Type:   typ,
		Date:   NewDate(2024, 1, 15),
	}
	for _, m := range mods {
		m(&t)
	}
	return t
}

func onCard(cardID string) func(*Transaction) {
	return func(t *Transaction) {
		t.CreditCard = true
		t.CreditCardID = cardID
	}
}

func asCardPayment(t *Transaction) { t.IsCardPayment = true }

func TestClassifyBuckets(t *testing.T) {
	txns := []Transaction{
		tx("t1", TypeIncome, 100000),
		tx("t2", TypeExpense, 5000),
		tx("t3", TypeExpense, 2000, onCard("c1")),
		tx("t4", TypeExpense, 2000, onCard("c1"), asCardPayment),
		tx("t5", TypeIncome, 500, onCard("c1")),
	}

	c := Classify(txns)

	if len(c.RegularIncome) != 1 || c.RegularIncome[0].ID != "t1" {
		t.Errorf("regular income = %v", ids(c.RegularIncome))
	}
	if len(c.RegularExpenses) != 1 || c.RegularExpenses[0].ID != "t2" {
		t.Errorf("regular expenses = %v", ids(c.RegularExpenses))
	}
	if len(c.CreditCardPurchases) != 1 || c.CreditCardPurchases[0].ID != "t3" {
		t.Errorf("card purchases = %v", ids(c.CreditCardPurchases))
	}
	if len(c.CreditCardPayments) != 1 || c.CreditCardPayments[0].ID != "t4" {
		t.Errorf("card payments = %v", ids(c.CreditCardPayments))
	}
	if len(c.CreditCardIncome) != 1 || c.CreditCardIncome[0].ID != "t5" {
		t.Errorf("card income = %v", ids(c.CreditCardIncome))
	}
}

// A card transaction with type income keeps the income bucket even when the
// payment flag is set: IsCardPayment is only consulted for expenses.
func TestClassifyIncomeWithPaymentFlag(t *testing.T) {
	c := Classify([]Transaction{
		tx("t1", TypeIncome, 1000, onCard("c1"), asCardPayment),
	})
	if len(c.CreditCardIncome) != 1 {
		t.Fatalf("expected creditCardIncome bucket, got %+v", c)
	}
	if len(c.CreditCardPayments) != 0 {
		t.Errorf("payment flag on income transaction must not reach the payments bucket")
	}
}

// Partition property: buckets are pairwise disjoint and their union equals
// the input set by id.
func TestClassifyPartition(t *testing.T) {
	txns := []Transaction{
		tx("a", TypeIncome, 1),
		tx("b", TypeExpense, 2),
		tx("c", TypeExpense, 3, onCard("x")),
		tx("d", TypeExpense, 4, onCard("x"), asCardPayment),
		tx("e", TypeIncome, 5, onCard("x")),
		tx("f", TypeIncome, 6, onCard("y"), asCardPayment),
		tx("g", TypeExpense, 7),
	}

	c := Classify(txns)
	if c.Size() != len(txns) {
		t.Fatalf("bucket sizes sum to %d, want %d", c.Size(), len(txns))
	}

	seen := map[string]int{}
	for _, bucket := range [][]Transaction{
		c.RegularIncome, c.RegularExpenses,
		c.CreditCardPurchases, c.CreditCardPayments, c.CreditCardIncome,
	} {
		for _, tr := range bucket {
			seen[tr.ID]++
		}
	}
	for _, tr := range txns {
		if seen[tr.ID] != 1 {
			t.Errorf("transaction %s appears in %d buckets", tr.ID, seen[tr.ID])
		}
	}
}

func ids(ts []Transaction) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
