package csvio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
)

// ImportHeader is the exact header row bulk import accepts.
const ImportHeader = "amount,category,date,description,type,creditCard,creditCardName,isCardPayment"

var (
	ErrBadType         = errors.New("type must be income or expense")
	ErrTypeMismatch    = errors.New("type does not match category")
	ErrMissingCardName = errors.New("creditCard row without card name")
)

// Row is one validated import line, ready to become a transaction. The
// card is referenced by display name; the import service resolves or
// auto-creates the card per principal.
type Row struct {
	Amount         core.Money
	Category       core.Category
	Date           core.Date
	Description    string
	Type           core.TransactionType
	CreditCard     bool
	CreditCardName string
	IsCardPayment  bool
}

// RowError records why one line was dropped. Line numbers are 1-based and
// count the header.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// MarshalJSON flattens the wrapped error for API responses.
func (e RowError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Line  int    `json:"line"`
		Error string `json:"error"`
	}{Line: e.Line, Error: e.Err.Error()})
}

// ParseImport validates the file row by row. Invalid rows are dropped and
// reported, never fatal; only a missing header aborts the whole import.
func ParseImport(text string) ([]Row, []RowError, error) {
	rows, err := splitRows(text, ImportHeader)
	if err != nil {
		return nil, nil, err
	}

	var valid []Row
	var dropped []RowError
	for i, raw := range rows {
		line := i + 2
		r, err := parseImportRow(raw)
		if err != nil {
			dropped = append(dropped, RowError{Line: line, Err: err})
			continue
		}
		valid = append(valid, r)
	}
	return valid, dropped, nil
}

func parseImportRow(raw string) (Row, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 8 {
		return Row{}, fmt.Errorf("%w: %d fields, want 8", ErrBadRow, len(fields))
	}

	var r Row
	var err error
	if r.Amount, err = core.ParseAmount(fields[0]); err != nil {
		return Row{}, err
	}

	category, ok := core.CategoryFromName(strings.TrimSpace(fields[1]))
	if !ok {
		return Row{}, fmt.Errorf("%w: %q", core.ErrUnknownCategory, fields[1])
	}
	r.Category = category

	if r.Date, err = core.ParseDate(strings.TrimSpace(fields[2])); err != nil {
		return Row{}, err
	}

	r.Description = strings.TrimSpace(fields[3])
	if len(r.Description) > 200 {
		return Row{}, core.ErrDescriptionLength
	}

	switch core.TransactionType(strings.TrimSpace(strings.ToLower(fields[4]))) {
	case core.TypeIncome:
		r.Type = core.TypeIncome
	case core.TypeExpense:
		r.Type = core.TypeExpense
	default:
		return Row{}, fmt.Errorf("%w: %q", ErrBadType, fields[4])
	}
	// The taxonomy is authoritative; a declared type that contradicts it
	// marks a bad row rather than being silently rewritten.
	if r.Type != core.CategoryType(r.Category) {
		return Row{}, fmt.Errorf("%w: %s is %s", ErrTypeMismatch, r.Category, core.CategoryType(r.Category))
	}

	if r.CreditCard, err = parseBool(fields[5]); err != nil {
		return Row{}, err
	}
	r.CreditCardName = strings.TrimSpace(fields[6])
	if r.CreditCard && r.CreditCardName == "" {
		return Row{}, ErrMissingCardName
	}
	if r.IsCardPayment, err = parseBool(fields[7]); err != nil {
		return Row{}, err
	}
	if r.IsCardPayment && !r.CreditCard {
		return Row{}, core.ErrMissingCardRef
	}
	return r, nil
}

// parseBool accepts true/false in any case; an empty field means false.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: bad boolean %q", ErrBadRow, s)
}
