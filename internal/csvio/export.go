// Package csvio is the flat-file boundary: one deterministic header+row
// layout per report shape on the way out, and validated transaction rows on
// the way in. Fields are joined with plain commas and never quoted or
// escaped; a description containing a comma corrupts its row. That is a
// documented limitation of the format, not something this package repairs.
package csvio

import (
	"fmt"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/reports"
)

// table accumulates comma-joined rows. No quoting on purpose.
type table struct {
	b strings.Builder
}

func (t *table) row(fields ...string) {
	t.b.WriteString(strings.Join(fields, ","))
	t.b.WriteByte('\n')
}

func (t *table) String() string { return t.b.String() }

func money(m core.Money) string    { return m.String() }
func percent(f float64) string     { return strconv.FormatFloat(f, 'f', 2, 64) }
func itoa(n int) string            { return strconv.Itoa(n) }
func boolField(b bool) string      { return strconv.FormatBool(b) }
func dateField(d core.Date) string { return d.Format() }

// Export renders a report as CSV text. The switch is exhaustive over the
// closed shape set; an unknown shape is a programming error surfaced as a
// GenerationError.
func Export(r reports.Report) (string, error) {
	var t table
	switch rep := r.(type) {
	case *reports.MonthlySummaryReport:
		exportMonthlySummary(&t, rep)
	case *reports.CategoryBreakdownReport:
		exportCategoryBreakdown(&t, rep)
	case *reports.BudgetVsActualReport:
		exportBudgetVsActual(&t, rep)
	case *reports.IncomeSourcesReport:
		t.row("start", "end", "category", "name", "amount")
		for _, s := range rep.Sources {
			t.row(dateField(rep.Start), dateField(rep.End), string(s.Category), s.Name, money(s.Amount))
		}
	case *reports.SavingsRateReport:
		t.row("start", "end", "totalIncome", "netSavings", "savingsRate")
		t.row(dateField(rep.Start), dateField(rep.End),
			money(rep.TotalIncome), money(rep.NetSavings), percent(rep.SavingsRate))
	case *reports.ExpenseTrendReport:
		t.row("year", "month", "amount")
		for _, m := range rep.Months {
			t.row(itoa(m.Year), itoa(m.Month), money(m.Amount))
		}
	case *reports.CashFlowReport:
		t.row("year", "month", "income", "expenses", "net")
		for _, m := range rep.ByMonth {
			t.row(itoa(m.Year), itoa(m.Month), money(m.Income), money(m.Expenses), money(m.Net))
		}
	case *reports.CategoryTransactionDetailReport:
		t.row("category", "name", "date", "description", "amount", "creditCard")
		for _, c := range rep.Categories {
			for _, line := range c.Transactions {
				t.row(string(c.Category), c.Name, dateField(line.Date),
					line.Description, money(line.Amount), boolField(line.CreditCard))
			}
		}
	case *reports.CreditCardStatementReport:
		t.row("cardId", "cardName", "purchases", "payments", "income", "balance")
		for _, c := range rep.Cards {
			t.row(c.CardID, c.CardName, money(c.Purchases), money(c.Payments),
				money(c.Income), money(c.Balance))
		}
	case *reports.CreditUtilizationReport:
		t.row("cardId", "cardName", "limit", "balance", "utilization")
		for _, c := range rep.Cards {
			t.row(c.CardID, c.CardName, money(c.Limit), money(c.Balance), percent(c.Utilization))
		}
	case *reports.PaymentHistoryReport:
		t.row("date", "account", "kind", "amount")
		for _, p := range rep.Payments {
			t.row(dateField(p.Date), p.Account, p.Kind, money(p.Amount))
		}
	case *reports.DebtReductionProjectionReport:
		t.row("accountId", "name", "kind", "currentBalance",
			"averageMonthlyPayment", "averageMonthlySpending",
			"netMonthlyPayment", "monthsToPayOff")
		for _, a := range rep.Accounts {
			t.row(a.AccountID, a.Name, a.Kind, money(a.CurrentBalance),
				money(a.AverageMonthlyPayment), money(a.AverageMonthlySpending),
				money(a.NetMonthlyPayment), a.MonthsToPayOff)
		}
	case *reports.CategoryCreditCardUsageReport:
		t.row("category", "name", "cardSpend", "totalSpend", "cardShare")
		for _, c := range rep.Categories {
			t.row(string(c.Category), c.Name, money(c.CardSpend),
				money(c.TotalSpend), percent(c.CardShare))
		}
	case *reports.BalanceSheetReport:
		t.row("metric", "value")
		t.row("asOf", dateField(rep.AsOf))
		t.row("cash", money(rep.Cash))
		t.row("investments", money(rep.Investments))
		t.row("otherAssets", money(rep.OtherAssets))
		t.row("totalAssets", money(rep.TotalAssets))
		t.row("creditCardDebt", money(rep.CreditCardDebt))
		t.row("loanDebt", money(rep.LoanDebt))
		t.row("otherLiabilities", money(rep.OtherLiabilities))
		t.row("totalLiabilities", money(rep.TotalLiabilities))
		t.row("netWorth", money(rep.NetWorth))
	case *reports.CustomRangeReport:
		t.row("metric", "value")
		t.row("start", dateField(rep.Start))
		t.row("end", dateField(rep.End))
		writeTotals(&t, rep.Totals)
	case *reports.YTDSummaryReport:
		t.row("year", "month", "income", "expenses", "net")
		for _, m := range rep.Months {
			t.row(itoa(m.Year), itoa(m.Month), money(m.Income), money(m.Expenses), money(m.Net))
		}
	default:
		return "", &reports.GenerationError{
			ReportType: r.Type(),
			Err:        fmt.Errorf("no csv layout for report shape %T", r),
		}
	}
	return t.String(), nil
}

func exportMonthlySummary(t *table, rep *reports.MonthlySummaryReport) {
	t.row("metric", "value")
	t.row("start", dateField(rep.Start))
	t.row("end", dateField(rep.End))
	writeTotals(t, rep.Totals)
	if rep.Comparison != nil {
		t.row("previousIncome", money(rep.Comparison.PreviousIncome))
		t.row("previousExpenses", money(rep.Comparison.PreviousExpenses))
		t.row("incomeChange", money(rep.Comparison.IncomeChange))
		t.row("expensesChange", money(rep.Comparison.ExpensesChange))
	}
}

func writeTotals(t *table, totals core.Totals) {
	t.row("totalIncome", money(totals.TotalIncome))
	t.row("totalExpenses", money(totals.TotalExpenses))
	t.row("netSavings", money(totals.NetSavings))
	t.row("savingsRate", percent(totals.SavingsRate))
}

// exportCategoryBreakdown repeats the range on every row so the file parses
// back into the full report without side metadata.
func exportCategoryBreakdown(t *table, rep *reports.CategoryBreakdownReport) {
	t.row("start", "end", "category", "name", "amount")
	for _, c := range rep.Categories {
		t.row(dateField(rep.Start), dateField(rep.End),
			string(c.Category), c.Name, money(c.Amount))
	}
}

func exportBudgetVsActual(t *table, rep *reports.BudgetVsActualReport) {
	t.row("year", "month", "category", "name", "budgeted", "actual", "difference")
	for _, l := range rep.Lines {
		t.row(itoa(rep.Year), itoa(rep.Month), string(l.Category), l.Name,
			money(l.Budgeted), money(l.Actual), money(l.Difference))
	}
}
