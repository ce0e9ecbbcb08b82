package api

import (
	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/settlement"
)

// ---- Requests ----

type createGroupRequest struct {
	Name     string   `json:"name"`
	Location string   `json:"location,omitempty"`
	Admin    string   `json:"admin,omitempty"`
	Members  []string `json:"members"`
}

type addExpenseRequest struct {
	PayerID     string `json:"payer_id"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

type settleDebtRequest struct {
	Accept bool `json:"accept"`
}

// ---- Responses ----

type memberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type expenseResponse struct {
	ID          string `json:"id"`
	PayerID     string `json:"payer_id"`
	Amount      string `json:"amount"`
	Display     string `json:"display"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

type debtResponse struct {
	ID         string `json:"id"`
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
	Amount     string `json:"amount"`
	Display    string `json:"display"`
	Status     string `json:"status"`
}

type balanceResponse struct {
	MemberID  string `json:"member_id"`
	TotalPaid string `json:"total_paid"`
	FairShare string `json:"fair_share"`
	Net       string `json:"net"`
	Display   string `json:"display"`
}

type groupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	AdminID   string            `json:"admin_id"`
	Location  string            `json:"location,omitempty"`
	CreatedAt int64             `json:"created_at"`
	Members   []memberResponse  `json:"members"`
	Expenses  []expenseResponse `json:"expenses,omitempty"`
	Debts     []debtResponse    `json:"debts,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- Conversions ----

func toMemberResponses(members []models.Member) []memberResponse {
	out := make([]memberResponse, len(members))
	for i, m := range members {
		out[i] = memberResponse{ID: m.ID, Name: m.Name}
	}
	return out
}

func toExpenseResponse(e models.Expense, f settlement.Formatter) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		PayerID:     e.PayerID,
		Amount:      e.Amount.StringFixed(2),
		Display:     f.Format(e.Amount),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseResponses(expenses []models.Expense, f settlement.Formatter) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e, f)
	}
	return out
}

func toDebtResponse(d models.Debt, f settlement.Formatter) debtResponse {
	return debtResponse{
		ID:         d.ID,
		DebtorID:   d.DebtorID,
		CreditorID: d.CreditorID,
		Amount:     d.Amount.StringFixed(2),
		Display:    f.Format(d.Amount),
		Status:     string(d.Status),
	}
}

func toDebtResponses(debts []models.Debt, f settlement.Formatter) []debtResponse {
	out := make([]debtResponse, len(debts))
	for i, d := range debts {
		out[i] = toDebtResponse(d, f)
	}
	return out
}

func toGroupResponse(g *models.Group, f settlement.Formatter) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		AdminID:   g.AdminID,
		Location:  g.Location,
		CreatedAt: g.CreatedAt,
		Members:   toMemberResponses(g.Members),
		Expenses:  toExpenseResponses(g.Expenses, f),
		Debts:     toDebtResponses(g.Debts, f),
	}
}

func toBalanceResponses(balances []settlement.MemberBalance, f settlement.Formatter) []balanceResponse {
	out := make([]balanceResponse, len(balances))
	for i, b := range balances {
		out[i] = balanceResponse{
			MemberID:  b.MemberID,
			TotalPaid: b.TotalPaid.StringFixed(2),
			FairShare: b.FairShare.StringFixed(2),
			Net:       b.Net.StringFixed(2),
			Display:   f.Format(b.Net),
		}
	}
	return out
}
