package settlement

import (
	"errors"

	"github.com/rachaconta/backend/internal/models"
)

// ErrNotPending is returned when a settle transition is attempted on a
// debt that already reached a terminal status.
var ErrNotPending = errors.New("debt is not pending")

// SettleDebt applies the lifecycle transition to a debt: accept moves it
// to settled, refuse moves it to rejected. Both outcomes are terminal.
//
// Only pending debts may transition; anything else returns ErrNotPending
// with the debt unchanged. The transition is a pure value operation; the
// caller persists the result.
func SettleDebt(d models.Debt, accept bool) (models.Debt, error) {
	if d.Status != models.DebtPending {
		return d, ErrNotPending
	}
	if accept {
		d.Status = models.DebtSettled
	} else {
		d.Status = models.DebtRejected
	}
	return d, nil
}
