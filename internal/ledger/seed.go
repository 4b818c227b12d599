package ledger

import "accounting/internal/core"

// DemoTransactions is the sample data the dashboard starts with.
func DemoTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Type: core.Income, Description: "Product Sale", Category: "Revenue", Amount: core.Money{Cents: 120000}, Date: "2024-01-15"},
		{ID: 2, Type: core.Expense, Description: "Office Rent", Category: "Operating", Amount: core.Money{Cents: -80000}, Date: "2024-01-14"},
		{ID: 3, Type: core.Income, Description: "Service Fee", Category: "Revenue", Amount: core.Money{Cents: 35000}, Date: "2024-01-13"},
		{ID: 4, Type: core.Expense, Description: "Utilities", Category: "Operating", Amount: core.Money{Cents: -15000}, Date: "2024-01-12"},
	}
}
