package reports

import "fintrack/internal/core"

// generateBalanceSheet evaluates the sheet at the single as-of date (the
// range end). Cash is derived from the ledger: regular income minus regular
// expenses minus card payments. Card purchases do not reduce cash until
// paid; the unpaid part shows up as credit card debt instead.
func generateBalanceSheet(in Inputs) *BalanceSheetReport {
	asOf := in.End
	report := &BalanceSheetReport{AsOf: asOf}

	upTo := inRange(in.Transactions, core.Date{}, asOf)
	t := core.Aggregate(core.Classify(upTo))
	report.Cash = t.TotalRegularIncome.
		Sub(t.TotalRegularExpenses).
		Sub(t.TotalCreditCardPayments)

	for _, item := range in.Items {
		switch {
		case item.Category == core.ItemLoan:
			report.LoanDebt = report.LoanDebt.Add(core.LoanBalance(item, upTo))
		case item.Category == core.ItemInvestment:
			report.Investments = report.Investments.Add(item.Amount)
		case item.Type == core.ItemAsset:
			report.OtherAssets = report.OtherAssets.Add(item.Amount)
		default:
			report.OtherLiabilities = report.OtherLiabilities.Add(item.Amount)
		}
	}

	for _, card := range in.Cards {
		report.CreditCardDebt = report.CreditCardDebt.Add(core.CardBalance(card, upTo))
	}

	report.TotalAssets = report.Cash.Add(report.Investments).Add(report.OtherAssets)
	report.TotalLiabilities = report.CreditCardDebt.Add(report.LoanDebt).Add(report.OtherLiabilities)
	report.NetWorth = report.TotalAssets.Sub(report.TotalLiabilities)
	return report
}
