package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/settlement"
	"github.com/rachaconta/backend/internal/storage"
)

// MaxDescriptionLen bounds the free-text expense description.
const MaxDescriptionLen = 200

var (
	ErrInvalidAmount      = errors.New("expense amount must be positive")
	ErrPayerNotMember     = errors.New("payer is not a member of the group")
	ErrDescriptionTooLong = errors.New("expense description too long")
)

// ExpenseService records expenses and keeps the group's debt set current.
// Every recorded expense triggers a full settlement recomputation that
// replaces the previous debt set; append and replace happen in one storage
// transaction so concurrent recordings cannot drop each other's effect.
type ExpenseService struct {
	store     storage.Store
	collector *metrics.Collector
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend. collector may be nil (tests).
func NewExpenseService(store storage.Store, collector *metrics.Collector) *ExpenseService {
	return &ExpenseService{store: store, collector: collector}
}

// Record validates and appends an expense, recomputing the group's debts.
// The engine itself accepts unknown payers, so membership is checked here,
// before the expense ever reaches it.
func (s *ExpenseService) Record(ctx context.Context, groupID, payerID string, amount decimal.Decimal, description string) (*models.Expense, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	description = strings.TrimSpace(description)
	if len(description) > MaxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, ok := group.Member(payerID); !ok {
		return nil, ErrPayerNotMember
	}

	expense := &models.Expense{
		PayerID:     payerID,
		Amount:      amount,
		Description: description,
	}

	var emitted int
	recompute := func(members []models.Member, expenses []models.Expense) []models.Debt {
		debts := settlement.ComputeDebts(members, expenses)
		emitted = len(debts)
		return debts
	}

	if err := s.store.AddExpense(ctx, groupID, expense, recompute); err != nil {
		slog.Error("AddExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	if s.collector != nil {
		s.collector.ExpensesRecorded.Inc()
		s.collector.SettlementsComputed.Inc()
		s.collector.DebtsEmitted.Add(float64(emitted))
	}

	slog.Info("Expense recorded",
		"group_id", groupID,
		"expense_id", expense.ID,
		"payer_id", payerID,
		"amount", amount.String(),
		"debts_emitted", emitted,
	)
	return expense, nil
}

// Balances returns every member's position for the group.
func (s *ExpenseService) Balances(ctx context.Context, groupID string) ([]settlement.MemberBalance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return settlement.Balances(group.Members, group.Expenses), nil
}
