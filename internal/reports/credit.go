package reports

import (
	"math"
	"sort"
	"strconv"

	"fintrack/internal/core"
)

func generateCreditCardStatement(in Inputs) *CreditCardStatementReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	report := &CreditCardStatementReport{Start: in.Start, End: in.End}

	for _, card := range in.Cards {
		stmt := CardStatement{
			CardID:   card.ID,
			CardName: card.Name,
			// Balance reflects the full replay, not just the range.
			Balance: core.CardBalance(card, in.Transactions),
		}
		for _, t := range ranged {
			if !t.CreditCard || t.CreditCardID != card.ID {
				continue
			}
			stmt.Transactions = append(stmt.Transactions, line(t))
			switch {
			case t.Type == core.TypeIncome:
				stmt.Income = stmt.Income.Add(t.Amount)
			case t.IsCardPayment:
				stmt.Payments = stmt.Payments.Add(t.Amount)
			default:
				stmt.Purchases = stmt.Purchases.Add(t.Amount)
			}
		}
		report.Cards = append(report.Cards, stmt)
	}
	return report
}

// generateCreditUtilization divides the replayed balance by the limit. A
// zero limit is treated as one currency unit rather than raising or
// surfacing Infinity; the resulting figure is not capped.
func generateCreditUtilization(in Inputs) *CreditUtilizationReport {
	report := &CreditUtilizationReport{}
	for _, card := range in.Cards {
		balance := core.CardBalance(card, in.Transactions)
		limit := card.Limit
		if !limit.IsPositive() {
			limit = core.Money{Cents: 100}
		}
		report.Cards = append(report.Cards, CardUtilization{
			CardID:      card.ID,
			CardName:    card.Name,
			Limit:       card.Limit,
			Balance:     balance,
			Utilization: balance.Float64() / limit.Float64() * 100,
		})
	}
	return report
}

func generatePaymentHistory(in Inputs) *PaymentHistoryReport {
	cardNames := map[string]string{}
	for _, c := range in.Cards {
		cardNames[c.ID] = c.Name
	}
	loanNames := map[string]string{}
	for _, i := range in.Items {
		loanNames[i.ID] = i.Name
	}
	// A missing account reference degrades to "Unknown", never an error.
	name := func(m map[string]string, id string) string {
		if n, ok := m[id]; ok {
			return n
		}
		return "Unknown"
	}

	report := &PaymentHistoryReport{Start: in.Start, End: in.End}
	for _, t := range inRange(in.Transactions, in.Start, in.End) {
		switch {
		case t.CreditCard && t.IsCardPayment && t.Type == core.TypeExpense:
			report.Payments = append(report.Payments, PaymentRecord{
				Date:    t.Date,
				Account: name(cardNames, t.CreditCardID),
				Kind:    "card-payment",
				Amount:  t.Amount,
			})
		case t.IsLoanPayment:
			report.Payments = append(report.Payments, PaymentRecord{
				Date:    t.Date,
				Account: name(loanNames, t.LoanID),
				Kind:    "loan-payment",
				Amount:  t.Amount,
			})
		default:
			continue
		}
		report.Total = report.Total.Add(t.Amount)
	}
	sort.SliceStable(report.Payments, func(i, j int) bool {
		return report.Payments[i].Date.Time.Before(report.Payments[j].Date.Time)
	})
	return report
}

func generateDebtReductionProjection(in Inputs) *DebtReductionProjectionReport {
	ranged := inRange(in.Transactions, in.Start, in.End)
	months := core.MonthsCovered(in.Start, in.End)
	report := &DebtReductionProjectionReport{Start: in.Start, End: in.End}

	for _, card := range in.Cards {
		var payments, spending core.Money
		for _, t := range ranged {
			if !t.CreditCard || t.CreditCardID != card.ID || t.Type != core.TypeExpense {
				continue
			}
			if t.IsCardPayment {
				payments = payments.Add(t.Amount)
			} else {
				spending = spending.Add(t.Amount)
			}
		}
		report.Accounts = append(report.Accounts, projectDebt(
			card.ID, card.Name, "credit-card",
			core.CardBalance(card, in.Transactions), payments, spending, months))
	}

	for _, item := range in.Items {
		if item.Category != core.ItemLoan {
			continue
		}
		var payments core.Money
		for _, t := range ranged {
			if t.IsLoanPayment && t.LoanID == item.ID {
				payments = payments.Add(t.Amount)
			}
		}
		report.Accounts = append(report.Accounts, projectDebt(
			item.ID, item.Name, "loan",
			core.LoanBalance(item, in.Transactions), payments, core.Money{}, months))
	}
	return report
}

// projectDebt derives the payoff horizon for one account. The sentinel
// "N/A" stands in whenever payments do not outpace spending; Infinity and
// NaN never reach a caller.
func projectDebt(id, name, kind string, balance, payments, spending core.Money, months int) DebtProjection {
	if months < 1 {
		months = 1
	}
	avgPayment := core.Money{Cents: payments.Cents / int64(months)}
	avgSpending := core.Money{Cents: spending.Cents / int64(months)}
	net := avgPayment.Sub(avgSpending)

	p := DebtProjection{
		AccountID:              id,
		Name:                   name,
		Kind:                   kind,
		CurrentBalance:         balance,
		AverageMonthlyPayment:  avgPayment,
		AverageMonthlySpending: avgSpending,
		NetMonthlyPayment:      net,
		MonthsToPayOff:         MonthsToPayOffNA,
	}
	switch {
	case !balance.IsPositive():
		p.MonthsToPayOff = "0"
	case net.IsPositive():
		n := int64(math.Ceil(balance.Float64() / net.Float64()))
		p.MonthsToPayOff = strconv.FormatInt(n, 10)
	}
	return p
}
