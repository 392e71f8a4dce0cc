package reports

import "fintrack/internal/core"

func generateMonthlySummary(in Inputs) *MonthlySummaryReport {
	totals := core.Aggregate(core.Classify(inRange(in.Transactions, in.Start, in.End)))
	report := &MonthlySummaryReport{Start: in.Start, End: in.End, Totals: totals}

	// Month-over-month comparison only makes sense for a calendar-month
	// range; arbitrary ranges leave it nil.
	if isCalendarMonth(in.Start, in.End) {
		prevEnd := core.Date{Time: in.Start.AddDate(0, 0, -1)}
		prevStart := prevEnd.MonthStart()
		prev := core.Aggregate(core.Classify(inRange(in.Transactions, prevStart, prevEnd)))
		report.Comparison = &PeriodComparison{
			PreviousIncome:   prev.TotalIncome,
			PreviousExpenses: prev.TotalExpenses,
			IncomeChange:     totals.TotalIncome.Sub(prev.TotalIncome),
			ExpensesChange:   totals.TotalExpenses.Sub(prev.TotalExpenses),
		}
	}
	return report
}

func isCalendarMonth(start, end core.Date) bool {
	return start.Equal(start.MonthStart().Time) && end.Equal(start.MonthEnd().Time)
}

func generateSavingsRate(in Inputs) *SavingsRateReport {
	totals := core.Aggregate(core.Classify(inRange(in.Transactions, in.Start, in.End)))
	return &SavingsRateReport{
		Start:       in.Start,
		End:         in.End,
		TotalIncome: totals.TotalIncome,
		NetSavings:  totals.NetSavings,
		SavingsRate: totals.SavingsRate,
	}
}

func generateCustomRange(in Inputs) *CustomRangeReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	return &CustomRangeReport{
		Start:              in.Start,
		End:                in.End,
		Totals:             core.Aggregate(core.Classify(ranged)),
		ExpensesByCategory: expenseByCategory(ranged),
		IncomeByCategory:   incomeByCategory(ranged),
	}
}

func generateYTDSummary(in Inputs) *YTDSummaryReport {
	// Year-to-date always runs from January 1 of the end date's year,
	// whatever range the caller asked for.
	asOf := in.End
	start := core.NewDate(asOf.Year(), 1, 1)
	ranged := inRange(in.Transactions, start, asOf)

	report := &YTDSummaryReport{
		Year:   asOf.Year(),
		AsOf:   asOf,
		Totals: core.Aggregate(core.Classify(ranged)),
	}
	for _, m := range monthsIn(start, asOf) {
		monthEnd := m.MonthEnd()
		if monthEnd.Time.After(asOf.Time) {
			monthEnd = asOf
		}
		t := core.Aggregate(core.Classify(inRange(ranged, m, monthEnd)))
		report.Months = append(report.Months, MonthFlow{
			Year:     m.Year(),
			Month:    m.Month(),
			Income:   t.TotalIncome,
			Expenses: t.TotalExpenses,
			Net:      t.NetSavings,
		})
	}
	return report
}
