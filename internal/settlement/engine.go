// Package settlement implements the debt settlement core: a pure function
// that turns a group's members and expenses into a minimal set of directed
// debts, the lifecycle transition for a single debt, and currency display
// formatting.
//
// All monetary arithmetic uses decimal.Decimal. Balances within 0.01
// currency units of zero are treated as settled; the same tolerance bounds
// loop termination so rounding noise never produces spurious debts.
package settlement

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rachaconta/backend/internal/models"
)

// Tolerance is the threshold below which a balance or partial transfer is
// treated as zero.
var Tolerance = decimal.RequireFromString("0.01")

// MemberBalance is one member's position within a group.
type MemberBalance struct {
	MemberID string

	// TotalPaid is the sum of expense amounts where this member is payer.
	TotalPaid decimal.Decimal

	// FairShare is the group total divided equally by member count.
	FairShare decimal.Decimal

	// Net is TotalPaid - FairShare. Positive = creditor, negative = debtor.
	Net decimal.Decimal
}

// party is a mutable creditor or debtor position during greedy matching.
type party struct {
	memberID  string
	remaining decimal.Decimal
}

// ComputeDebts computes the minimal set of debts that settles all member
// balances for an equal split of the given expenses.
//
// The computation is pure and deterministic given ordered inputs. Empty
// members or empty expenses yields an empty result, never an error. A payer
// that is not in members still has its balance credited under its id (the
// caller is responsible for referential validation); such a balance is never
// matched against a fair share, so upstream validation matters.
//
// Ties between equal balances resolve in member-list order: sorting is
// stable and members are visited in input order. Generated debt IDs are
// random UUIDs, so recomputing identical input yields an equal set only
// modulo IDs (see DebtsEqual).
func ComputeDebts(members []models.Member, expenses []models.Expense) []models.Debt {
	if len(members) == 0 || len(expenses) == 0 {
		return nil
	}

	creditors, debtors := partition(Balances(members, expenses))

	// Largest outstanding amounts first; stable so input order breaks ties.
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining.GreaterThan(creditors[j].remaining)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining.GreaterThan(debtors[j].remaining)
	})

	var debts []models.Debt
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		amount := decimal.Min(creditors[ci].remaining, debtors[di].remaining)

		if amount.GreaterThan(Tolerance) {
			debts = append(debts, models.Debt{
				ID:         uuid.New().String(),
				DebtorID:   debtors[di].memberID,
				CreditorID: creditors[ci].memberID,
				Amount:     amount.Round(2),
				Status:     models.DebtPending,
			})
		}

		creditors[ci].remaining = creditors[ci].remaining.Sub(amount)
		debtors[di].remaining = debtors[di].remaining.Sub(amount)

		if creditors[ci].remaining.LessThan(Tolerance) {
			ci++
		}
		if debtors[di].remaining.LessThan(Tolerance) {
			di++
		}
	}

	return debts
}

// Balances computes every member's net position. Every member appears in
// the result, including members with zero net balance. Unknown payers are
// appended after the member list, credited with what they paid but owing
// no fair share.
func Balances(members []models.Member, expenses []models.Expense) []MemberBalance {
	if len(members) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	fairShare := total.Div(decimal.NewFromInt(int64(len(members))))

	// Initialize every member with zero before accumulation so no member
	// goes missing from the result.
	paid := make(map[string]decimal.Decimal, len(members))
	order := make([]string, 0, len(members))
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		if memberSet[m.ID] {
			continue
		}
		memberSet[m.ID] = true
		paid[m.ID] = decimal.Zero
		order = append(order, m.ID)
	}

	for _, e := range expenses {
		if _, ok := paid[e.PayerID]; !ok {
			order = append(order, e.PayerID)
			paid[e.PayerID] = decimal.Zero
		}
		paid[e.PayerID] = paid[e.PayerID].Add(e.Amount)
	}

	balances := make([]MemberBalance, 0, len(order))
	for _, id := range order {
		share := fairShare
		if !memberSet[id] {
			share = decimal.Zero
		}
		balances = append(balances, MemberBalance{
			MemberID:  id,
			TotalPaid: paid[id],
			FairShare: share,
			Net:       paid[id].Sub(share),
		})
	}
	return balances
}

// partition splits balances into creditors and debtors, dropping anyone
// within Tolerance of zero. Debtor amounts are stored positive.
func partition(balances []MemberBalance) (creditors, debtors []party) {
	for _, b := range balances {
		switch {
		case b.Net.GreaterThan(Tolerance):
			creditors = append(creditors, party{memberID: b.MemberID, remaining: b.Net})
		case b.Net.LessThan(Tolerance.Neg()):
			debtors = append(debtors, party{memberID: b.MemberID, remaining: b.Net.Neg()})
		}
	}
	return creditors, debtors
}

// DebtsEqual reports whether two debt sets are equal by value, ignoring
// generated IDs and group ownership.
func DebtsEqual(a, b []models.Debt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].DebtorID != b[i].DebtorID ||
			a[i].CreditorID != b[i].CreditorID ||
			a[i].Status != b[i].Status ||
			!a[i].Amount.Equal(b[i].Amount) {
			return false
		}
	}
	return true
}
