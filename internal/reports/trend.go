package reports

import "fintrack/internal/core"

func generateExpenseTrend(in Inputs) *ExpenseTrendReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	report := &ExpenseTrendReport{}

	var total core.Money
	months := monthsIn(in.Start, in.End)
	for _, m := range months {
		monthEnd := m.MonthEnd()
		t := core.Aggregate(core.Classify(inRange(ranged, m, monthEnd)))
		report.Months = append(report.Months, MonthAmount{
			Year:   m.Year(),
			Month:  m.Month(),
			Amount: t.TotalExpenses,
		})
		total = total.Add(t.TotalExpenses)
	}
	if len(months) > 0 {
		report.Average = core.Money{Cents: total.Cents / int64(len(months))}
	}
	return report
}

// generateCashFlow reports actual money movement: card purchases do not
// touch cash until the payment happens, so outflows count regular expenses
// plus card payments, and inflows count regular income only. Cashback
// credited to a card stays on the card side.
func generateCashFlow(in Inputs) *CashFlowReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	report := &CashFlowReport{Start: in.Start, End: in.End}

	flow := func(ts []core.Transaction) (inflow, outflow core.Money) {
		t := core.Aggregate(core.Classify(ts))
		inflow = t.TotalRegularIncome
		outflow = t.TotalRegularExpenses.Add(t.TotalCreditCardPayments)
		return inflow, outflow
	}

	report.Inflows, report.Outflows = flow(ranged)
	report.Net = report.Inflows.Sub(report.Outflows)

	for _, m := range monthsIn(in.Start, in.End) {
		inflow, outflow := flow(inRange(ranged, m, m.MonthEnd()))
		report.ByMonth = append(report.ByMonth, MonthFlow{
			Year:     m.Year(),
			Month:    m.Month(),
			Income:   inflow,
			Expenses: outflow,
			Net:      inflow.Sub(outflow),
		})
	}
	return report
}
