package models

// Group is the aggregate root: it owns its members, expenses and debts
// for display and query purposes. The settlement engine borrows the
// (members, expenses) slice of a group and returns a replacement debts
// slice; it never owns any of this data.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Churrasco", "Viagem").
	Name string

	// AdminID is the member who created and administers the group.
	AdminID string

	// Location is an optional free-text place for the group.
	Location string

	// Members is the ordered list of participants. Order matters: it is
	// the tie-break order for settlement when balances are equal.
	Members []Member

	// Expenses is the append-only list of payment events.
	Expenses []Expense

	// Debts is the current settlement result. Replaced wholesale every
	// time an expense is added.
	Debts []Debt

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member returns the member with the given id, or false if the id is not
// part of the group's member list.
func (g *Group) Member(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
