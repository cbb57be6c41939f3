package domain

import "time"

// Task status values.
const (
	StatusToDo       = "to-do"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work within a board. Assignee and reviewer are
// optional; the board reference never changes after creation.
type Task struct {
	ID          int64
	BoardID     int64
	Title       string
	Description string
	Status      string
	Priority    string

	Assignee *UserRef
	Reviewer *UserRef

	DueDate   *time.Time
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time

	CommentsCount int64
}
