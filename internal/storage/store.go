// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rachaconta/backend/internal/models"
)

// ErrNotFound is returned when a requested group, expense or debt does
// not exist. Implementations wrap it with detail.
var ErrNotFound = errors.New("not found")

// RecomputeFunc produces the replacement debt set for a group from its
// full member list and expense history. The store calls it inside the
// same transaction that appends an expense, so expense-append and
// debt-set-replace are one logical unit per group.
type RecomputeFunc func(members []models.Member, expenses []models.Expense) []models.Debt

// Store defines the interface for group, expense and debt persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its initial member list.
	// The group.ID and CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members, expenses and debts.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups with their member lists. Expenses
	// and debts are not loaded.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group and everything it owns.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddExpense appends an expense to a group and replaces the group's
	// entire debt set with the result of recompute, in one transaction.
	// The expense.ID and CreatedAt fields are populated by the store.
	AddExpense(ctx context.Context, groupID string, expense *models.Expense, recompute RecomputeFunc) error

	// ListDebts retrieves the current debt set for a group.
	ListDebts(ctx context.Context, groupID string) ([]models.Debt, error)

	// GetDebt retrieves a debt by its ID.
	// Returns an error wrapping ErrNotFound if the debt does not exist.
	GetDebt(ctx context.Context, debtID string) (*models.Debt, error)

	// UpdateDebtStatus sets the status of an existing debt.
	// Returns an error wrapping ErrNotFound if the debt does not exist.
	UpdateDebtStatus(ctx context.Context, debtID string, status models.DebtStatus) error

	// Close releases any resources held by the store.
	Close() error
}
