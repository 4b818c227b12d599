package core

import "time"

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// DateLayout is the calendar date format stored on transactions.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is a committed income or expense record.
	Transaction struct {
		ID          int64
		Type        TransactionType
		Description string
		Category    string
		Amount      Money // signed: positive for Income, negative for Expense
		Date        string
	}

	// Draft holds uncommitted transaction data while the editor is open.
	Draft struct {
		Type        TransactionType
		Description string
		Category    string
		Amount      Money  // unsigned magnitude
		EditingID   *int64 // nil in create mode
	}

	// Totals are derived from the current transaction list.
	Totals struct {
		TotalIncome   Money
		TotalExpenses Money
		NetProfit     Money
		Count         int
	}
)

// ParseTransactionType maps form input to a type. Anything other than
// "Expense" is treated as Income, matching the two-option select.
func ParseTransactionType(s string) TransactionType {
	if TransactionType(s) == Expense {
		return Expense
	}
	return Income
}

func (t TransactionType) IsIncome() bool {
	return t != Expense
}

// NewDraft returns the default draft used when creating a transaction.
func NewDraft() Draft {
	return Draft{Type: Income}
}

// DraftFrom copies a transaction into a draft bound to its id, keeping only
// the magnitude of the amount.
func DraftFrom(t Transaction) Draft {
	id := t.ID
	return Draft{
		Type:        t.Type,
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.Abs(),
		EditingID:   &id,
	}
}

// IsEdit reports whether the draft replaces an existing transaction.
func (d Draft) IsEdit() bool {
	return d.EditingID != nil
}

// FormatDate renders t as a transaction date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ComputeTotals sums the list. Income is the sum of positive amounts, expenses
// the magnitude of the sum of negative amounts.
func ComputeTotals(items []Transaction) Totals {
	var income, expenses int64
	for _, t := range items {
		switch {
		case t.Amount.Cents > 0:
			income += t.Amount.Cents
		case t.Amount.Cents < 0:
			expenses += t.Amount.Cents
		}
	}
	expenses = -expenses
	return Totals{
		TotalIncome:   Money{Cents: income},
		TotalExpenses: Money{Cents: expenses},
		NetProfit:     Money{Cents: income - expenses},
		Count:         len(items),
	}
}
