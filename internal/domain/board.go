package domain

import "time"

// Board is a named collection of tasks owned by exactly one user.
// The owner is set at creation and never changes.
type Board struct {
	ID      int64
	Title   string
	OwnerID int64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Counts filled by list/detail queries.
	TicketCount   int64
	ToDoCount     int64
	HighPrioCount int64
}
