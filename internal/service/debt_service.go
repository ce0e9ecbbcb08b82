package service

import (
	"context"
	"log/slog"

	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/settlement"
	"github.com/rachaconta/backend/internal/storage"
)

// DebtService applies the debt lifecycle transition and persists it.
type DebtService struct {
	store     storage.Store
	collector *metrics.Collector
}

// NewDebtService creates a new DebtService with the given storage backend.
// collector may be nil (tests).
func NewDebtService(store storage.Store, collector *metrics.Collector) *DebtService {
	return &DebtService{store: store, collector: collector}
}

// Settle transitions a pending debt: accept moves it to settled, refuse
// to rejected. An unknown debt id surfaces storage.ErrNotFound; a debt
// already in a terminal state surfaces settlement.ErrNotPending.
func (s *DebtService) Settle(ctx context.Context, debtID string, accept bool) (*models.Debt, error) {
	debt, err := s.store.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}

	updated, err := settlement.SettleDebt(*debt, accept)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDebtStatus(ctx, debtID, updated.Status); err != nil {
		slog.Error("UpdateDebtStatus failed", "debt_id", debtID, "error", err)
		return nil, err
	}

	if s.collector != nil {
		if accept {
			s.collector.DebtsSettled.Inc()
		} else {
			s.collector.DebtsRejected.Inc()
		}
	}

	slog.Info("Debt transition",
		"debt_id", debtID,
		"group_id", updated.GroupID,
		"status", updated.Status,
	)
	return &updated, nil
}

// List retrieves the current debt set for a group.
func (s *DebtService) List(ctx context.Context, groupID string) ([]models.Debt, error) {
	// Group existence check keeps unknown groups distinguishable from
	// groups that simply have no debts.
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListDebts(ctx, groupID)
}
