package models

// Member represents one participant in a group's expense pool.
//
// A member referenced by any expense or debt in a group must be part of
// that group's member list at computation time. The settlement engine does
// not enforce this; the service layer validates it before an expense is
// recorded.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string
}
