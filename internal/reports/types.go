// Package reports turns a pre-fetched ledger snapshot into derived report
// structures. Every generator is a pure function over Inputs: it either
// returns the complete shape (with 0 or "N/A" standing in for undefined
// figures) or fails with a single GenerationError. Nothing here performs
// I/O; the caller gathers the snapshot first.
package reports

import (
	"errors"
	"fmt"

	"fintrack/internal/core"
)

// ReportType is the closed set of reports the engine can produce. Adding a
// type means extending the switch in Generate and the CSV layouts; there is
// no string-keyed dispatch table.
type ReportType string

const (
	MonthlySummary            ReportType = "monthly-summary"
	CategoryBreakdown         ReportType = "category-breakdown"
	BudgetVsActual            ReportType = "budget-vs-actual"
	IncomeSources             ReportType = "income-sources"
	SavingsRate               ReportType = "savings-rate"
	ExpenseTrend              ReportType = "expense-trend"
	CashFlow                  ReportType = "cash-flow"
	CategoryTransactionDetail ReportType = "category-transaction-detail"
	CreditCardStatement       ReportType = "credit-card-statement"
	CreditUtilization         ReportType = "credit-utilization"
	PaymentHistory            ReportType = "payment-history"
	DebtReductionProjection   ReportType = "debt-reduction-projection"
	CategoryCreditCardUsage   ReportType = "category-credit-card-usage"
	BalanceSheet              ReportType = "balance-sheet"
	CustomRange               ReportType = "custom-range"
	YTDSummary                ReportType = "ytd-summary"
)

// All lists every report type in a stable order.
var All = []ReportType{
	MonthlySummary, CategoryBreakdown, BudgetVsActual, IncomeSources,
	SavingsRate, ExpenseTrend, CashFlow, CategoryTransactionDetail,
	CreditCardStatement, CreditUtilization, PaymentHistory,
	DebtReductionProjection, CategoryCreditCardUsage, BalanceSheet,
	CustomRange, YTDSummary,
}

var ErrUnknownReportType = errors.New("unknown report type")

// Parse maps the wire identifier to a ReportType.
func Parse(s string) (ReportType, error) {
	for _, t := range All {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReportType, s)
}

// GenerationError is the single failure type a report request surfaces.
type GenerationError struct {
	ReportType ReportType
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s report: %v", e.ReportType, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Report is the closed union of all report shapes.
type Report interface {
	Type() ReportType
}

// Inputs is the snapshot a generator works from. Transactions hold the
// full ledger for the principal; generators narrow to [Start,End] (both
// inclusive) themselves, because some figures (derived balances, the
// balance sheet) need history outside the requested range.
type Inputs struct {
	Transactions []core.Transaction
	Cards        []core.CreditCard
	Items        []core.BalanceSheetItem
	Goals        []core.BudgetGoal
	Start        core.Date
	End          core.Date
}

// MonthsToPayOffNA is surfaced instead of Infinity or NaN when payments do
// not outpace spending.
const MonthsToPayOffNA = "N/A"

type CategoryAmount struct {
	Category core.Category `json:"category"`
	Name     string        `json:"name"`
	Amount   core.Money    `json:"amount"`
}

type TransactionLine struct {
	ID          string        `json:"id"`
	Date        core.Date     `json:"date"`
	Description string        `json:"description"`
	Category    core.Category `json:"category"`
	Amount      core.Money    `json:"amount"`
	CreditCard  bool          `json:"creditCard"`
}

type PeriodComparison struct {
	PreviousIncome   core.Money `json:"previousIncome"`
	PreviousExpenses core.Money `json:"previousExpenses"`
	IncomeChange     core.Money `json:"incomeChange"`
	ExpensesChange   core.Money `json:"expensesChange"`
}

type MonthFlow struct {
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	Income   core.Money `json:"income"`
	Expenses core.Money `json:"expenses"`
	Net      core.Money `json:"net"`
}

type MonthlySummaryReport struct {
	Start      core.Date         `json:"start"`
	End        core.Date         `json:"end"`
	Totals     core.Totals       `json:"totals"`
	Comparison *PeriodComparison `json:"comparison,omitempty"`
}

func (*MonthlySummaryReport) Type() ReportType { return MonthlySummary }

type CategoryBreakdownReport struct {
	Start      core.Date        `json:"start"`
	End        core.Date        `json:"end"`
	Categories []CategoryAmount `json:"categories"`
	Total      core.Money       `json:"total"`
}

func (*CategoryBreakdownReport) Type() ReportType { return CategoryBreakdown }

type BudgetLine struct {
	Category   core.Category `json:"category"`
	Name       string        `json:"name"`
	Budgeted   core.Money    `json:"budgeted"`
	Actual     core.Money    `json:"actual"`
	Difference core.Money    `json:"difference"`
}

type BudgetVsActualReport struct {
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	Lines         []BudgetLine `json:"lines"`
	TotalBudgeted core.Money   `json:"totalBudgeted"`
	TotalActual   core.Money   `json:"totalActual"`
}

func (*BudgetVsActualReport) Type() ReportType { return BudgetVsActual }

type IncomeSourcesReport struct {
	Start   core.Date        `json:"start"`
	End     core.Date        `json:"end"`
	Sources []CategoryAmount `json:"sources"`
	Total   core.Money       `json:"total"`
}

func (*IncomeSourcesReport) Type() ReportType { return IncomeSources }

type SavingsRateReport struct {
	Start       core.Date  `json:"start"`
	End         core.Date  `json:"end"`
	TotalIncome core.Money `json:"totalIncome"`
	NetSavings  core.Money `json:"netSavings"`
	SavingsRate float64    `json:"savingsRate"`
}

func (*SavingsRateReport) Type() ReportType { return SavingsRate }

type MonthAmount struct {
	Year   int        `json:"year"`
	Month  int        `json:"month"`
	Amount core.Money `json:"amount"`
}

type ExpenseTrendReport struct {
	Months  []MonthAmount `json:"months"`
	Average core.Money    `json:"average"`
}

func (*ExpenseTrendReport) Type() ReportType { return ExpenseTrend }

type CashFlowReport struct {
	Start    core.Date   `json:"start"`
	End      core.Date   `json:"end"`
	Inflows  core.Money  `json:"inflows"`
	Outflows core.Money  `json:"outflows"`
	Net      core.Money  `json:"net"`
	ByMonth  []MonthFlow `json:"byMonth"`
}

func (*CashFlowReport) Type() ReportType { return CashFlow }

type CategoryDetail struct {
	Category     core.Category     `json:"category"`
	Name         string            `json:"name"`
	Total        core.Money        `json:"total"`
	Transactions []TransactionLine `json:"transactions"`
}

type CategoryTransactionDetailReport struct {
	Start      core.Date        `json:"start"`
	End        core.Date        `json:"end"`
	Categories []CategoryDetail `json:"categories"`
}

func (*CategoryTransactionDetailReport) Type() ReportType { return CategoryTransactionDetail }

type CardStatement struct {
	CardID       string            `json:"cardId"`
	CardName     string            `json:"cardName"`
	Purchases    core.Money        `json:"purchases"`
	Payments     core.Money        `json:"payments"`
	Income       core.Money        `json:"income"`
	Balance      core.Money        `json:"balance"`
	Transactions []TransactionLine `json:"transactions"`
}

type CreditCardStatementReport struct {
	Start core.Date       `json:"start"`
	End   core.Date       `json:"end"`
	Cards []CardStatement `json:"cards"`
}

func (*CreditCardStatementReport) Type() ReportType { return CreditCardStatement }

type CardUtilization struct {
	CardID      string     `json:"cardId"`
	CardName    string     `json:"cardName"`
	Limit       core.Money `json:"limit"`
	Balance     core.Money `json:"balance"`
	Utilization float64    `json:"utilization"`
}

type CreditUtilizationReport struct {
	Cards []CardUtilization `json:"cards"`
}

func (*CreditUtilizationReport) Type() ReportType { return CreditUtilization }

type PaymentRecord struct {
	Date    core.Date  `json:"date"`
	Account string     `json:"account"`
	Kind    string     `json:"kind"` // "card-payment" or "loan-payment"
	Amount  core.Money `json:"amount"`
}

type PaymentHistoryReport struct {
	Start    core.Date       `json:"start"`
	End      core.Date       `json:"end"`
	Payments []PaymentRecord `json:"payments"`
	Total    core.Money      `json:"total"`
}

func (*PaymentHistoryReport) Type() ReportType { return PaymentHistory }

type DebtProjection struct {
	AccountID              string     `json:"accountId"`
	Name                   string     `json:"name"`
	Kind                   string     `json:"kind"` // "credit-card" or "loan"
	CurrentBalance         core.Money `json:"currentBalance"`
	AverageMonthlyPayment  core.Money `json:"averageMonthlyPayment"`
	AverageMonthlySpending core.Money `json:"averageMonthlySpending"`
	NetMonthlyPayment      core.Money `json:"netMonthlyPayment"`
	MonthsToPayOff         string     `json:"monthsToPayOff"`
}

type DebtReductionProjectionReport struct {
	Start    core.Date        `json:"start"`
	End      core.Date        `json:"end"`
	Accounts []DebtProjection `json:"accounts"`
}

func (*DebtReductionProjectionReport) Type() ReportType { return DebtReductionProjection }

type CategoryCardUsage struct {
	Category   core.Category `json:"category"`
	Name       string        `json:"name"`
	CardSpend  core.Money    `json:"cardSpend"`
	TotalSpend core.Money    `json:"totalSpend"`
	CardShare  float64       `json:"cardShare"` // percent of category spend on card
}

type CategoryCreditCardUsageReport struct {
	Start      core.Date           `json:"start"`
	End        core.Date           `json:"end"`
	Categories []CategoryCardUsage `json:"categories"`
}

func (*CategoryCreditCardUsageReport) Type() ReportType { return CategoryCreditCardUsage }

type BalanceSheetReport struct {
	AsOf             core.Date  `json:"asOf"`
	Cash             core.Money `json:"cash"`
	Investments      core.Money `json:"investments"`
	OtherAssets      core.Money `json:"otherAssets"`
	TotalAssets      core.Money `json:"totalAssets"`
	CreditCardDebt   core.Money `json:"creditCardDebt"`
	LoanDebt         core.Money `json:"loanDebt"`
	OtherLiabilities core.Money `json:"otherLiabilities"`
	TotalLiabilities core.Money `json:"totalLiabilities"`
	NetWorth         core.Money `json:"netWorth"`
}

func (*BalanceSheetReport) Type() ReportType { return BalanceSheet }

type CustomRangeReport struct {
	Start              core.Date        `json:"start"`
	End                core.Date        `json:"end"`
	Totals             core.Totals      `json:"totals"`
	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	IncomeByCategory   []CategoryAmount `json:"incomeByCategory"`
}

func (*CustomRangeReport) Type() ReportType { return CustomRange }

type YTDSummaryReport struct {
	Year   int         `json:"year"`
	AsOf   core.Date   `json:"asOf"`
	Totals core.Totals `json:"totals"`
	Months []MonthFlow `json:"months"`
}

func (*YTDSummaryReport) Type() ReportType { return YTDSummary }
