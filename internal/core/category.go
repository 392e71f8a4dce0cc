package core

// Category identifies one entry of the fixed taxonomy. The set is closed;
// user-defined categories are not part of this system.
type Category string

// TransactionType is always derived from the category, never stored
// authoritatively on its own.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

const (
	// Income categories.
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryInvestments Category = "investments"
	CategoryCashback    Category = "cashback"
	CategoryOtherIncome Category = "other_income"

	// Expense categories.
	CategoryGroceries     Category = "groceries"
	CategoryRent          Category = "rent"
	CategoryUtilities     Category = "utilities"
	CategoryTransport     Category = "transport"
	CategoryDining        Category = "dining"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryTravel        Category = "travel"
	CategoryEducation     Category = "education"
	CategorySubscriptions Category = "subscriptions"
	CategoryDebtPayment   Category = "debt_payment"
	CategoryOtherExpense  Category = "other_expense"
)

// UnknownCategoryName is the sentinel display form for any value outside
// the taxonomy. CategoryName never fails.
const UnknownCategoryName = "Unknown Category"

type categoryInfo struct {
	name string
	typ  TransactionType
}

var taxonomy = map[Category]categoryInfo{
	CategorySalary:      {"Salary", TypeIncome},
	CategoryFreelance:   {"Freelance", TypeIncome},
	CategoryInvestments: {"Investments", TypeIncome},
	CategoryCashback:    {"Cashback", TypeIncome},
	CategoryOtherIncome: {"Other Income", TypeIncome},

	CategoryGroceries:     {"Groceries", TypeExpense},
	CategoryRent:          {"Rent", TypeExpense},
	CategoryUtilities:     {"Utilities", TypeExpense},
	CategoryTransport:     {"Transport", TypeExpense},
	CategoryDining:        {"Dining", TypeExpense},
	CategoryEntertainment: {"Entertainment", TypeExpense},
	CategoryHealth:        {"Health", TypeExpense},
	CategoryShopping:      {"Shopping", TypeExpense},
	CategoryTravel:        {"Travel", TypeExpense},
	CategoryEducation:     {"Education", TypeExpense},
	CategorySubscriptions: {"Subscriptions", TypeExpense},
	CategoryDebtPayment:   {"Debt Payment", TypeExpense},
	CategoryOtherExpense:  {"Other Expense", TypeExpense},
}

// incomeOrder and expenseOrder fix deterministic report/export ordering.
var incomeOrder = []Category{
	CategorySalary, CategoryFreelance, CategoryInvestments,
	CategoryCashback, CategoryOtherIncome,
}

var expenseOrder = []Category{
	CategoryGroceries, CategoryRent, CategoryUtilities, CategoryTransport,
	CategoryDining, CategoryEntertainment, CategoryHealth, CategoryShopping,
	CategoryTravel, CategoryEducation, CategorySubscriptions,
	CategoryDebtPayment, CategoryOtherExpense,
}

// KnownCategory reports whether c belongs to the taxonomy.
func KnownCategory(c Category) bool {
	_, ok := taxonomy[c]
	return ok
}

// CategoryType derives the transaction type for a category. Values outside
// the taxonomy default to expense so the function stays total; callers
// validate membership separately at the write boundary.
func CategoryType(c Category) TransactionType {
	if info, ok := taxonomy[c]; ok {
		return info.typ
	}
	return TypeExpense
}

// CategoryName returns the display form, or the UnknownCategoryName
// sentinel for anything outside the taxonomy.
func CategoryName(c Category) string {
	if info, ok := taxonomy[c]; ok {
		return info.name
	}
	return UnknownCategoryName
}

// IncomeCategories returns income categories in report order.
func IncomeCategories() []Category {
	out := make([]Category, len(incomeOrder))
	copy(out, incomeOrder)
	return out
}

// ExpenseCategories returns expense categories in report order.
func ExpenseCategories() []Category {
	out := make([]Category, len(expenseOrder))
	copy(out, expenseOrder)
	return out
}

// CategoryFromName maps a display form (or raw identifier) back to the
// category, used by the CSV importer. Lookup is exact on identifiers and
// display names; ok is false outside the taxonomy.
func CategoryFromName(s string) (Category, bool) {
	if KnownCategory(Category(s)) {
		return Category(s), true
	}
	for c, info := range taxonomy {
		if info.name == s {
			return c, true
		}
	}
	return "", false
}
