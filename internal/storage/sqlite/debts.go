package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/storage"
)

// ListDebts retrieves the current debt set for a group.
func (s *SQLiteStore) ListDebts(ctx context.Context, groupID string) ([]models.Debt, error) {
	return queryDebts(ctx, s.db, groupID)
}

// GetDebt retrieves a debt by ID.
func (s *SQLiteStore) GetDebt(ctx context.Context, debtID string) (*models.Debt, error) {
	d := &models.Debt{}
	var amount string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, debtor_id, creditor_id, amount, status FROM debts WHERE id = ?",
		debtID,
	).Scan(&d.ID, &d.GroupID, &d.DebtorID, &d.CreditorID, &amount, &d.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	d.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse debt amount %q: %w", amount, err)
	}
	return d, nil
}

// UpdateDebtStatus sets the status of an existing debt.
func (s *SQLiteStore) UpdateDebtStatus(ctx context.Context, debtID string, status models.DebtStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE debts SET status = ? WHERE id = ?",
		status, debtID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}
	return nil
}

// replaceDebts discards every debt the group has, settled or not, and
// inserts the fresh set. Runs inside the caller's transaction.
func replaceDebts(ctx context.Context, tx *sql.Tx, groupID string, debts []models.Debt) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM debts WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to clear debts: %w", err)
	}

	for _, d := range debts {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO debts (id, group_id, debtor_id, creditor_id, amount, status) VALUES (?, ?, ?, ?, ?, ?)",
			d.ID, groupID, d.DebtorID, d.CreditorID, d.Amount.String(), d.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt: %w", err)
		}
	}
	return nil
}

func queryDebts(ctx context.Context, q querier, groupID string) ([]models.Debt, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, group_id, debtor_id, creditor_id, amount, status FROM debts WHERE group_id = ? ORDER BY rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		var amount string
		if err := rows.Scan(&d.ID, &d.GroupID, &d.DebtorID, &d.CreditorID, &amount, &d.Status); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		d.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse debt amount %q: %w", amount, err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}
