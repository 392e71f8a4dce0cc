package core

import "testing"

func TestCategoryTypeIsTotal(t *testing.T) {
	for _, c := range IncomeCategories() {
		if CategoryType(c) != TypeIncome {
			t.Errorf("CategoryType(%s) = %s, want income", c, CategoryType(c))
		}
	}
	for _, c := range ExpenseCategories() {
		if CategoryType(c) != TypeExpense {
			t.Errorf("CategoryType(%s) = %s, want expense", c, CategoryType(c))
		}
	}
	// Values outside the enum still get an answer, never a panic.
	if got := CategoryType(Category("no-such-category")); got != TypeExpense {
		t.Errorf("CategoryType(unknown) = %s, want expense default", got)
	}
}

func TestCategoryNameSentinel(t *testing.T) {
	if got := CategoryName(CategoryGroceries); got != "Groceries" {
		t.Errorf("CategoryName(groceries) = %q", got)
	}
	if got := CategoryName(Category("banana")); got != UnknownCategoryName {
		t.Errorf("CategoryName(unknown) = %q, want %q", got, UnknownCategoryName)
	}
	if got := CategoryName(Category("")); got != UnknownCategoryName {
		t.Errorf("CategoryName(empty) = %q, want %q", got, UnknownCategoryName)
	}
}

func TestCategoryFromName(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"groceries", CategoryGroceries, true},
		{"Groceries", CategoryGroceries, true},
		{"Other Income", CategoryOtherIncome, true},
		{"salary", CategorySalary, true},
		{"Banana", "", false},
	}
	for _, tt := range tests {
		got, ok := CategoryFromName(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CategoryFromName(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTaxonomyPartition(t *testing.T) {
	// Every known category is exactly one of income or expense.
	seen := map[Category]bool{}
	for _, c := range append(IncomeCategories(), ExpenseCategories()...) {
		if seen[c] {
			t.Errorf("category %s listed twice", c)
		}
		seen[c] = true
		if !KnownCategory(c) {
			t.Errorf("ordered category %s not in taxonomy", c)
		}
	}
	if len(seen) != len(taxonomy) {
		t.Errorf("ordered lists cover %d categories, taxonomy has %d", len(seen), len(taxonomy))
	}
}
