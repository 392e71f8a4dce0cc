package reports

import (
	"errors"

	"fintrack/internal/core"
)

var ErrInvalidRange = errors.New("end date before start date")

// Generate routes a report request to its generator. The switch is
// exhaustive over the closed ReportType set; an out-of-set value is a
// GenerationError, not a silent default.
func Generate(typ ReportType, in Inputs) (Report, error) {
	if in.End.Time.Before(in.Start.Time) {
		return nil, &GenerationError{ReportType: typ, Err: ErrInvalidRange}
	}

	switch typ {
	case MonthlySummary:
		return generateMonthlySummary(in), nil
	case CategoryBreakdown:
		return generateCategoryBreakdown(in), nil
	case BudgetVsActual:
		return generateBudgetVsActual(in), nil
	case IncomeSources:
		return generateIncomeSources(in), nil
	case SavingsRate:
		return generateSavingsRate(in), nil
	case ExpenseTrend:
		return generateExpenseTrend(in), nil
	case CashFlow:
		return generateCashFlow(in), nil
	case CategoryTransactionDetail:
		return generateCategoryTransactionDetail(in), nil
	case CreditCardStatement:
		return generateCreditCardStatement(in), nil
	case CreditUtilization:
		return generateCreditUtilization(in), nil
	case PaymentHistory:
		return generatePaymentHistory(in), nil
	case DebtReductionProjection:
		return generateDebtReductionProjection(in), nil
	case CategoryCreditCardUsage:
		return generateCategoryCreditCardUsage(in), nil
	case BalanceSheet:
		return generateBalanceSheet(in), nil
	case CustomRange:
		return generateCustomRange(in), nil
	case YTDSummary:
		return generateYTDSummary(in), nil
	default:
		return nil, &GenerationError{ReportType: typ, Err: ErrUnknownReportType}
	}
}

// inRange narrows the snapshot to transactions dated within [start,end].
func inRange(ts []core.Transaction, start, end core.Date) []core.Transaction {
	out := make([]core.Transaction, 0, len(ts))
	for _, t := range ts {
		if t.Date.In(start, end) {
			out = append(out, t)
		}
	}
	return out
}

func line(t core.Transaction) TransactionLine {
	return TransactionLine{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount,
		CreditCard:  t.CreditCard,
	}
}

// expenseByCategory sums regular expenses and card purchases per expense
// category over the given transactions. Every category is present, zero
// included, in taxonomy order.
func expenseByCategory(ts []core.Transaction) []CategoryAmount {
	sums := map[core.Category]core.Money{}
	c := core.Classify(ts)
	for _, bucket := range [][]core.Transaction{c.RegularExpenses, c.CreditCardPurchases} {
		for _, t := range bucket {
			sums[t.Category] = sums[t.Category].Add(t.Amount)
		}
	}
	out := make([]CategoryAmount, 0, len(core.ExpenseCategories()))
	for _, cat := range core.ExpenseCategories() {
		out = append(out, CategoryAmount{
			Category: cat,
			Name:     core.CategoryName(cat),
			Amount:   sums[cat],
		})
	}
	return out
}

// incomeByCategory sums regular and card income per income category.
func incomeByCategory(ts []core.Transaction) []CategoryAmount {
	sums := map[core.Category]core.Money{}
	c := core.Classify(ts)
	for _, bucket := range [][]core.Transaction{c.RegularIncome, c.CreditCardIncome} {
		for _, t := range bucket {
			sums[t.Category] = sums[t.Category].Add(t.Amount)
		}
	}
	out := make([]CategoryAmount, 0, len(core.IncomeCategories()))
	for _, cat := range core.IncomeCategories() {
		out = append(out, CategoryAmount{
			Category: cat,
			Name:     core.CategoryName(cat),
			Amount:   sums[cat],
		})
	}
	return out
}

// monthsIn enumerates the calendar months touched by [start,end] in order.
func monthsIn(start, end core.Date) []core.Date {
	var months []core.Date
	for cur := start.MonthStart(); !cur.Time.After(end.Time); cur = core.NewDate(cur.Year(), cur.Month()+1, 1) {
		months = append(months, cur)
	}
	return months
}
