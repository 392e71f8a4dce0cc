package csvio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/reports"
)

var (
	ErrMissingHeader = errors.New("missing or malformed header row")
	ErrBadRow        = errors.New("malformed row")
)

// splitRows breaks the text into non-empty lines and checks the header.
func splitRows(text string, header string) ([]string, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var rows []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			rows = append(rows, l)
		}
	}
	if len(rows) == 0 || rows[0] != header {
		return nil, ErrMissingHeader
	}
	return rows[1:], nil
}

// parseSignedMoney reads the export wire form. Unlike the boundary amount
// parser it accepts zero and negative figures, which derived report columns
// legitimately contain.
func parseSignedMoney(s string) (core.Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	units, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return core.Money{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, s)
	}
	var frac int64
	if len(parts) == 2 {
		f := parts[1]
		if len(f) == 0 || len(f) > 2 {
			return core.Money{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, s)
		}
		if frac, err = strconv.ParseInt(f, 10, 64); err != nil {
			return core.Money{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, s)
		}
		if len(f) == 1 {
			frac *= 10
		}
	}
	cents := units*100 + frac
	if neg {
		cents = -cents
	}
	return core.Money{Cents: cents}, nil
}

// ParseCategoryBreakdown reads back the category-breakdown export. The
// report total is recomputed from the rows, which matches the generator's
// own definition of it.
func ParseCategoryBreakdown(text string) (*reports.CategoryBreakdownReport, error) {
	rows, err := splitRows(text, "start,end,category,name,amount")
	if err != nil {
		return nil, err
	}
	report := &reports.CategoryBreakdownReport{}
	for i, row := range rows {
		fields := strings.Split(row, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrBadRow, i+2, len(fields))
		}
		if report.Start, err = core.ParseDate(fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if report.End, err = core.ParseDate(fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		amount, err := parseSignedMoney(fields[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		report.Categories = append(report.Categories, reports.CategoryAmount{
			Category: core.Category(fields[2]),
			Name:     fields[3],
			Amount:   amount,
		})
		report.Total = report.Total.Add(amount)
	}
	return report, nil
}

// ParseBudgetVsActual reads back the budget-vs-actual export, recomputing
// the two totals from the rows.
func ParseBudgetVsActual(text string) (*reports.BudgetVsActualReport, error) {
	rows, err := splitRows(text, "year,month,category,name,budgeted,actual,difference")
	if err != nil {
		return nil, err
	}
	report := &reports.BudgetVsActualReport{}
	for i, row := range rows {
		fields := strings.Split(row, ",")
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrBadRow, i+2, len(fields))
		}
		if report.Year, err = strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if report.Month, err = strconv.Atoi(fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		budgeted, err := parseSignedMoney(fields[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		actual, err := parseSignedMoney(fields[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		difference, err := parseSignedMoney(fields[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		report.Lines = append(report.Lines, reports.BudgetLine{
			Category:   core.Category(fields[2]),
			Name:       fields[3],
			Budgeted:   budgeted,
			Actual:     actual,
			Difference: difference,
		})
		report.TotalBudgeted = report.TotalBudgeted.Add(budgeted)
		report.TotalActual = report.TotalActual.Add(actual)
	}
	return report, nil
}
