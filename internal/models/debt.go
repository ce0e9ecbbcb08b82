package models

import "github.com/shopspring/decimal"

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	// DebtPending is the initial status assigned at creation.
	DebtPending DebtStatus = "pending"

	// DebtSettled means the debtor paid and the creditor accepted. Terminal.
	DebtSettled DebtStatus = "settled"

	// DebtRejected means one of the parties disputed the debt. Terminal.
	DebtRejected DebtStatus = "rejected"
)

// Valid reports whether s is one of the known debt statuses.
func (s DebtStatus) Valid() bool {
	switch s {
	case DebtPending, DebtSettled, DebtRejected:
		return true
	}
	return false
}

// Terminal reports whether s is a final state.
func (s DebtStatus) Terminal() bool {
	return s == DebtSettled || s == DebtRejected
}

// Debt represents a directed obligation produced by settlement:
// the debtor owes the creditor the given amount.
//
// Debts are created in bulk whenever a group's expenses change, replacing
// the entire previous debt set for that group. Individual debts only ever
// move from pending to settled or rejected, driven by explicit user action.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// GroupID is the group this debt belongs to.
	GroupID string

	// DebtorID is the member who owes money. Never equal to CreditorID.
	DebtorID string

	// CreditorID is the member who is owed money.
	CreditorID string

	// Amount is the obligation, rounded to 2 decimal places. Always
	// positive; obligations below the settlement tolerance are never
	// materialized.
	Amount decimal.Decimal

	// Status is the lifecycle state (pending, settled, rejected).
	Status DebtStatus
}
