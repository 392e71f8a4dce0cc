package core

// Totals carries the per-bucket sums and the composite metrics derived
// from them. Card payments are excluded from TotalExpenses: the expense
// was already counted when the purchase happened.
type Totals struct {
	TotalRegularIncome       Money `json:"totalRegularIncome"`
	TotalRegularExpenses     Money `json:"totalRegularExpenses"`
	TotalCreditCardPurchases Money `json:"totalCreditCardPurchases"`
	TotalCreditCardPayments  Money `json:"totalCreditCardPayments"`
	TotalCreditCardIncome    Money `json:"totalCreditCardIncome"`

	TotalIncome   Money   `json:"totalIncome"`
	TotalExpenses Money   `json:"totalExpenses"`
	NetSavings    Money   `json:"netSavings"`
	SavingsRate   float64 `json:"savingsRate"`
}

func sumBucket(ts []Transaction) Money {
	var total Money
	for _, t := range ts {
		total = total.Add(t.Amount)
	}
	return total
}

// Aggregate sums the classified buckets and derives the composite
// metrics. SavingsRate is exactly 0 when income is zero, never NaN or Inf.
func Aggregate(c Classified) Totals {
	t := Totals{
		TotalRegularIncome:       sumBucket(c.RegularIncome),
		TotalRegularExpenses:     sumBucket(c.RegularExpenses),
		TotalCreditCardPurchases: sumBucket(c.CreditCardPurchases),
		TotalCreditCardPayments:  sumBucket(c.CreditCardPayments),
		TotalCreditCardIncome:    sumBucket(c.CreditCardIncome),
	}
	t.TotalIncome = t.TotalRegularIncome.Add(t.TotalCreditCardIncome)
	t.TotalExpenses = t.TotalRegularExpenses.Add(t.TotalCreditCardPurchases)
	t.NetSavings = t.TotalIncome.Sub(t.TotalExpenses)
	if t.TotalIncome.IsPositive() {
		t.SavingsRate = t.NetSavings.Float64() / t.TotalIncome.Float64() * 100
	}
	return t
}
