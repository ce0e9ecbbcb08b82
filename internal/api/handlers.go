// Package api exposes the group expense splitting backend over REST.
//
// Endpoints:
//
//	POST   /api/groups                 Create group
//	GET    /api/groups                 List groups
//	GET    /api/groups/{id}            Group detail (members, expenses, debts)
//	DELETE /api/groups/{id}            Delete group
//	POST   /api/groups/{id}/expenses   Record expense (recomputes debts)
//	GET    /api/groups/{id}/debts      Current debt set
//	GET    /api/groups/{id}/balances   Per-member balances
//	POST   /api/debts/{id}/settle      Accept or reject a pending debt
//
// Errors are returned as JSON: 400 for validation, 404 for unknown ids,
// 409 for transitions on non-pending debts, 500 otherwise.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rachaconta/backend/internal/service"
	"github.com/rachaconta/backend/internal/settlement"
	"github.com/rachaconta/backend/internal/storage"
)

// Handler holds the services behind the REST API.
type Handler struct {
	groups    *service.GroupService
	expenses  *service.ExpenseService
	debts     *service.DebtService
	formatter settlement.Formatter
}

// NewHandler creates a Handler over the given services. Amount display
// strings use the given formatter.
func NewHandler(groups *service.GroupService, expenses *service.ExpenseService, debts *service.DebtService, formatter settlement.Formatter) *Handler {
	return &Handler{
		groups:    groups,
		expenses:  expenses,
		debts:     debts,
		formatter: formatter,
	}
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	group, err := h.groups.Create(r.Context(), req.Name, req.Location, req.Admin, req.Members)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group, h.formatter))
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = toGroupResponse(g, h.formatter)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group, h.formatter))
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	expense, err := h.expenses.Record(r.Context(), chi.URLParam(r, "id"), req.PayerID, amount, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(*expense, h.formatter))
}

func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.debts.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponses(debts, h.formatter))
}

func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.expenses.Balances(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceResponses(balances, h.formatter))
}

func (h *Handler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	var req settleDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	debt, err := h.debts.Settle(r.Context(), chi.URLParam(r, "id"), req.Accept)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(*debt, h.formatter))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, settlement.ErrNotPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrPayerNotMember),
		errors.Is(err, service.ErrDescriptionTooLong),
		errors.Is(err, service.ErrEmptyGroupName),
		errors.Is(err, service.ErrNoMembers),
		errors.Is(err, service.ErrEmptyMemberName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
