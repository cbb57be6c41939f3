package domain

import "time"

// Comment is a text note on a task.
type Comment struct {
	ID         int64
	TaskID     int64
	AuthorID   int64
	AuthorName string
	Content    string
	CreatedAt  time.Time
}
