package settlement

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rachaconta/backend/internal/models"
)

func members(ids ...string) []models.Member {
	ms := make([]models.Member, len(ids))
	for i, id := range ids {
		ms[i] = models.Member{ID: id, Name: id}
	}
	return ms
}

func expense(payer string, amount string) models.Expense {
	return models.Expense{
		ID:      fmt.Sprintf("exp-%s-%s", payer, amount),
		PayerID: payer,
		Amount:  decimal.RequireFromString(amount),
	}
}

func TestComputeDebts(t *testing.T) {
	tests := []struct {
		name     string
		members  []models.Member
		expenses []models.Expense
		want     []models.Debt // compared ignoring IDs via DebtsEqual
	}{
		{
			name:    "single payer split three ways",
			members: members("A", "B", "C"),
			expenses: []models.Expense{
				expense("A", "90.00"),
			},
			// fair share 30: A=+60, B=-30, C=-30
			want: []models.Debt{
				{DebtorID: "B", CreditorID: "A", Amount: decimal.RequireFromString("30"), Status: models.DebtPending},
				{DebtorID: "C", CreditorID: "A", Amount: decimal.RequireFromString("30"), Status: models.DebtPending},
			},
		},
		{
			name:    "even payments produce no debts",
			members: members("A", "B"),
			expenses: []models.Expense{
				expense("A", "50"),
				expense("B", "50"),
			},
			want: nil,
		},
		{
			name:    "zero-balance member excluded",
			members: members("A", "B", "C"),
			expenses: []models.Expense{
				expense("A", "100"),
				expense("B", "50"),
			},
			// total 150, fair share 50: A=+50, B=0, C=-50
			want: []models.Debt{
				{DebtorID: "C", CreditorID: "A", Amount: decimal.RequireFromString("50"), Status: models.DebtPending},
			},
		},
		{
			name:     "no members",
			members:  nil,
			expenses: []models.Expense{expense("A", "10")},
			want:     nil,
		},
		{
			name:     "no expenses",
			members:  members("A", "B"),
			expenses: nil,
			want:     nil,
		},
		{
			name:    "one debtor pays several creditors",
			members: members("A", "B", "C", "D"),
			expenses: []models.Expense{
				expense("A", "100"),
				expense("B", "60"),
			},
			// total 160, fair share 40: A=+60, B=+20, C=-40, D=-40
			want: []models.Debt{
				{DebtorID: "C", CreditorID: "A", Amount: decimal.RequireFromString("40"), Status: models.DebtPending},
				{DebtorID: "D", CreditorID: "A", Amount: decimal.RequireFromString("20"), Status: models.DebtPending},
				{DebtorID: "D", CreditorID: "B", Amount: decimal.RequireFromString("20"), Status: models.DebtPending},
			},
		},
		{
			name:    "equal balances tie-break in member order",
			members: members("A", "B", "C", "D"),
			expenses: []models.Expense{
				expense("A", "50"),
				expense("B", "50"),
			},
			// fair share 25: A=+25, B=+25, C=-25, D=-25. Stable sort keeps
			// A before B and C before D.
			want: []models.Debt{
				{DebtorID: "C", CreditorID: "A", Amount: decimal.RequireFromString("25"), Status: models.DebtPending},
				{DebtorID: "D", CreditorID: "B", Amount: decimal.RequireFromString("25"), Status: models.DebtPending},
			},
		},
		{
			name:    "sub-tolerance imbalance yields nothing",
			members: members("A", "B"),
			expenses: []models.Expense{
				expense("A", "10.00"),
				expense("B", "9.99"),
			},
			// fair share 9.995: A=+0.005, B=-0.005, both within tolerance
			want: nil,
		},
		{
			name:    "cents never drift",
			members: members("A", "B", "C"),
			expenses: []models.Expense{
				expense("A", "0.10"),
				expense("A", "0.20"),
				expense("A", "0.30"),
			},
			// total 0.60, fair share 0.20: A=+0.40, B=-0.20, C=-0.20
			want: []models.Debt{
				{DebtorID: "B", CreditorID: "A", Amount: decimal.RequireFromString("0.20"), Status: models.DebtPending},
				{DebtorID: "C", CreditorID: "A", Amount: decimal.RequireFromString("0.20"), Status: models.DebtPending},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDebts(tt.members, tt.expenses)
			if !DebtsEqual(got, tt.want) {
				t.Errorf("ComputeDebts() = %s, want %s", describeDebts(got), describeDebts(tt.want))
			}
			for _, d := range got {
				if d.ID == "" {
					t.Error("expected generated debt ID")
				}
				if d.DebtorID == d.CreditorID {
					t.Errorf("self-debt emitted for %s", d.DebtorID)
				}
				if !d.Amount.GreaterThan(decimal.Zero) {
					t.Errorf("non-positive debt amount %s", d.Amount)
				}
			}
			if len(tt.members) > 0 && len(got) > len(tt.members)-1 {
				t.Errorf("minimality bound violated: %d debts for %d members", len(got), len(tt.members))
			}
		})
	}
}

func describeDebts(debts []models.Debt) string {
	if len(debts) == 0 {
		return "[]"
	}
	s := "["
	for i, d := range debts {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s->%s:%s", d.DebtorID, d.CreditorID, d.Amount)
	}
	return s + "]"
}

func TestComputeDebtsConservation(t *testing.T) {
	// Total emitted debt must equal total positive balance, within
	// rounding tolerance, for a messy multi-payer input.
	ms := members("A", "B", "C", "D", "E")
	exps := []models.Expense{
		expense("A", "123.45"),
		expense("B", "67.89"),
		expense("C", "10.01"),
		expense("A", "5.55"),
		expense("E", "200.00"),
	}

	totalOwed := decimal.Zero
	balanceSum := decimal.Zero
	for _, b := range Balances(ms, exps) {
		balanceSum = balanceSum.Add(b.Net)
		if b.Net.GreaterThan(decimal.Zero) {
			totalOwed = totalOwed.Add(b.Net)
		}
	}

	// Zero-sum: fair share is derived from total/count, so nets cancel.
	if !balanceSum.Round(2).IsZero() {
		t.Errorf("balances sum to %s, want 0", balanceSum)
	}

	totalDebt := decimal.Zero
	for _, d := range ComputeDebts(ms, exps) {
		totalDebt = totalDebt.Add(d.Amount)
	}
	if totalDebt.Sub(totalOwed).Abs().GreaterThan(Tolerance) {
		t.Errorf("total debt %s != total owed %s", totalDebt, totalOwed)
	}
}

func TestComputeDebtsIdempotent(t *testing.T) {
	ms := members("A", "B", "C", "D")
	exps := []models.Expense{
		expense("A", "33.33"),
		expense("B", "99.99"),
		expense("C", "12.34"),
	}

	first := ComputeDebts(ms, exps)
	second := ComputeDebts(ms, exps)
	if !DebtsEqual(first, second) {
		t.Errorf("recompute of identical input differs: %s vs %s",
			describeDebts(first), describeDebts(second))
	}
}

func TestComputeDebtsUnknownPayer(t *testing.T) {
	// A payer outside the member list is credited under its id but owes
	// no fair share. Referential validation is the caller's job; the
	// engine just stays robust.
	ms := members("A", "B")
	exps := []models.Expense{expense("X", "30")}

	balances := Balances(ms, exps)
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	for _, b := range balances {
		if b.MemberID == "X" {
			if !b.Net.Equal(decimal.RequireFromString("30")) {
				t.Errorf("unknown payer net = %s, want 30", b.Net)
			}
			if !b.FairShare.IsZero() {
				t.Errorf("unknown payer fair share = %s, want 0", b.FairShare)
			}
		}
	}

	debts := ComputeDebts(ms, exps)
	// A and B each owe 15; X is owed 30.
	if len(debts) != 2 {
		t.Fatalf("expected 2 debts, got %s", describeDebts(debts))
	}
	for _, d := range debts {
		if d.CreditorID != "X" {
			t.Errorf("creditor = %s, want X", d.CreditorID)
		}
	}
}

func TestBalancesIncludeEveryMember(t *testing.T) {
	ms := members("A", "B", "C")
	exps := []models.Expense{
		expense("A", "100"),
		expense("B", "50"),
	}

	balances := Balances(ms, exps)
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	// B breaks even but must still appear.
	if balances[1].MemberID != "B" || !balances[1].Net.IsZero() {
		t.Errorf("balance[1] = %s net %s, want B net 0", balances[1].MemberID, balances[1].Net)
	}
}
