package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/storage"
)

// AddExpense appends an expense and replaces the group's debt set inside a
// single transaction. SQLite serializes writers, so two concurrent appends
// to the same group cannot interleave their read-compute-replace cycles.
func (s *SQLiteStore) AddExpense(ctx context.Context, groupID string, expense *models.Expense, recompute storage.RecomputeFunc) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.GroupID = groupID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, payer_id, amount, description, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, groupID, expense.PayerID, expense.Amount.String(), expense.Description, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	members, err := queryMembers(ctx, tx, groupID)
	if err != nil {
		return err
	}
	expenses, err := queryExpenses(ctx, tx, groupID)
	if err != nil {
		return err
	}

	debts := recompute(members, expenses)

	if err := replaceDebts(ctx, tx, groupID, debts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func queryExpenses(ctx context.Context, q querier, groupID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, group_id, payer_id, amount, description, created_at FROM expenses WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var amount string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.PayerID, &amount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
