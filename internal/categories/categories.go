// Package categories holds the fixed category sets offered per
// transaction type and lookup helpers for command validation.
package categories

import "github.com/expensepilot-dev/expensepilot/internal/model"

// ExpenseCategories are the selectable categories for expenses.
var ExpenseCategories = []string{
	"Food",
	"Housing",
	"Transportation",
	"Entertainment",
	"Utilities",
	"Healthcare",
	"Shopping",
	"Education",
	"Other",
}

// IncomeCategories are the suggested categories for income. Income
// also accepts free-form category strings.
var IncomeCategories = []string{
	"Salary",
	"Business",
	"Investment",
	"Gift",
	"Other Income",
}

// ForType returns the category set for a transaction type.
func ForType(t model.TransactionType) []string {
	if t == model.TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IsValid reports whether a category is acceptable for the type.
// Expense categories are restricted to the fixed set; income accepts
// any non-empty string.
func IsValid(t model.TransactionType, category string) bool {
	if category == "" {
		return false
	}
	if t == model.TypeIncome {
		return true
	}
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
