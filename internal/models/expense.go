package models

import "github.com/shopspring/decimal"

// Expense represents a single payment event within a group.
// Expenses are immutable once created; they are only ever appended.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PayerID is the member who paid the full amount.
	PayerID string

	// Amount is the monetary amount paid. Always positive; the service
	// layer rejects zero or negative amounts before persisting.
	Amount decimal.Decimal

	// Description is a short free-text note (bounded length).
	Description string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
