package reports

import "fintrack/internal/core"

func generateCategoryBreakdown(in Inputs) *CategoryBreakdownReport {
	categories := expenseByCategory(inRange(in.Transactions, in.Start, in.End))
	var total core.Money
	for _, c := range categories {
		total = total.Add(c.Amount)
	}
	return &CategoryBreakdownReport{
		Start:      in.Start,
		End:        in.End,
		Categories: categories,
		Total:      total,
	}
}

// generateBudgetVsActual compares the goals of the range's starting month
// against actual spend over the range. A category without a goal is
// budgeted at 0, never an error.
func generateBudgetVsActual(in Inputs) *BudgetVsActualReport {
	year, month := in.Start.Year(), in.Start.Month()
	goals := map[core.Category]core.Money{}
	for _, g := range in.Goals {
		if g.Year == year && g.Month == month {
			goals[g.Category] = g.Amount
		}
	}

	actuals := expenseByCategory(inRange(in.Transactions, in.Start, in.End))
	report := &BudgetVsActualReport{Year: year, Month: month}
	for _, a := range actuals {
		budgeted := goals[a.Category]
		report.Lines = append(report.Lines, BudgetLine{
			Category:   a.Category,
			Name:       a.Name,
			Budgeted:   budgeted,
			Actual:     a.Amount,
			Difference: budgeted.Sub(a.Amount),
		})
		report.TotalBudgeted = report.TotalBudgeted.Add(budgeted)
		report.TotalActual = report.TotalActual.Add(a.Amount)
	}
	return report
}

func generateIncomeSources(in Inputs) *IncomeSourcesReport {
	sources := incomeByCategory(inRange(in.Transactions, in.Start, in.End))
	var total core.Money
	for _, s := range sources {
		total = total.Add(s.Amount)
	}
	return &IncomeSourcesReport{
		Start:   in.Start,
		End:     in.End,
		Sources: sources,
		Total:   total,
	}
}

func generateCategoryTransactionDetail(in Inputs) *CategoryTransactionDetailReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	c := core.Classify(ranged)

	byCat := map[core.Category][]TransactionLine{}
	totals := map[core.Category]core.Money{}
	for _, bucket := range [][]core.Transaction{c.RegularExpenses, c.CreditCardPurchases} {
		for _, t := range bucket {
			byCat[t.Category] = append(byCat[t.Category], line(t))
			totals[t.Category] = totals[t.Category].Add(t.Amount)
		}
	}

	report := &CategoryTransactionDetailReport{Start: in.Start, End: in.End}
	for _, cat := range core.ExpenseCategories() {
		report.Categories = append(report.Categories, CategoryDetail{
			Category:     cat,
			Name:         core.CategoryName(cat),
			Total:        totals[cat],
			Transactions: byCat[cat],
		})
	}
	return report
}

// generateCategoryCreditCardUsage reports, per expense category, how much
// of the spend went through a card. Share is a percentage of the category
// total, 0 when the category saw no spend at all.
func generateCategoryCreditCardUsage(in Inputs) *CategoryCreditCardUsageReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	c := core.Classify(ranged)

	cardSpend := map[core.Category]core.Money{}
	totalSpend := map[core.Category]core.Money{}
	for _, t := range c.CreditCardPurchases {
		cardSpend[t.Category] = cardSpend[t.Category].Add(t.Amount)
		totalSpend[t.Category] = totalSpend[t.Category].Add(t.Amount)
	}
	for _, t := range c.RegularExpenses {
		totalSpend[t.Category] = totalSpend[t.Category].Add(t.Amount)
	}

	report := &CategoryCreditCardUsageReport{Start: in.Start, End: in.End}
	for _, cat := range core.ExpenseCategories() {
		usage := CategoryCardUsage{
			Category:   cat,
			Name:       core.CategoryName(cat),
			CardSpend:  cardSpend[cat],
			TotalSpend: totalSpend[cat],
		}
		if usage.TotalSpend.IsPositive() {
			usage.CardShare = usage.CardSpend.Float64() / usage.TotalSpend.Float64() * 100
		}
		report.Categories = append(report.Categories, usage)
	}
	return report
}
