package core

// Classified partitions a transaction list into the five disjoint buckets
// every aggregate report is built from. The buckets are exhaustive over
// {income,expense} x {card,not card} x {payment}: each transaction lands in
// exactly one.
type Classified struct {
	RegularIncome       []Transaction
	RegularExpenses     []Transaction
	CreditCardPurchases []Transaction
	CreditCardPayments  []Transaction
	CreditCardIncome    []Transaction
}

// Classify assigns each transaction to its bucket. IsCardPayment is only
// consulted for expense-type card transactions: a card transaction with
// type income is credit-card income even when the payment flag is set.
func Classify(transactions []Transaction) Classified {
	var c Classified
	for _, t := range transactions {
		switch {
		case t.Type == TypeIncome && !t.CreditCard:
			c.RegularIncome = append(c.RegularIncome, t)
		case t.Type == TypeExpense && !t.CreditCard:
			c.RegularExpenses = append(c.RegularExpenses, t)
		case t.Type == TypeExpense && t.IsCardPayment:
			c.CreditCardPayments = append(c.CreditCardPayments, t)
		case t.Type == TypeExpense:
			c.CreditCardPurchases = append(c.CreditCardPurchases, t)
		default:
			c.CreditCardIncome = append(c.CreditCardIncome, t)
		}
	}
	return c
}

// Size returns the total number of classified transactions.
func (c Classified) Size() int {
	return len(c.RegularIncome) + len(c.RegularExpenses) +
		len(c.CreditCardPurchases) + len(c.CreditCardPayments) +
		len(c.CreditCardIncome)
}
