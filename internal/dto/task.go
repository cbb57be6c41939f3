package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/MarcoAlber/KanMind/internal/domain"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC. It remembers whether the key
// was present at all, so null and "" both clear while an absent key keeps.
type DueDate struct {
	t   *time.Time
	set bool
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	d.set = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// If it was date-only (no time component), use start of day UTC
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

// Present reports whether due_date appeared in the JSON body, even as null.
func (d DueDate) Present() bool { return d.set }

type CreateTaskRequest struct {
	BoardID     int64   `json:"board" binding:"required"`
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"max=2000"`
	Status      string  `json:"status" binding:"omitempty"`
	Priority    string  `json:"priority" binding:"omitempty"`
	AssigneeID  *int64  `json:"assignee_id"`
	ReviewerID  *int64  `json:"reviewer_id"`
	DueDate     DueDate `json:"due_date"` // optional: "2026-02-19" or RFC3339
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	AssigneeID  *int64   `json:"assignee_id"`
	ReviewerID  *int64   `json:"reviewer_id"`
	DueDate     DueDate  `json:"due_date"` // absent = keep, null/"" = clear, value = set
}

type TaskResponse struct {
	ID            int64        `json:"id"`
	BoardID       int64        `json:"board"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        string       `json:"status"`
	Priority      string       `json:"priority"`
	Assignee      *dom.UserRef `json:"assignee"`
	Reviewer      *dom.UserRef `json:"reviewer"`
	DueDate       *time.Time   `json:"due_date"`
	CommentsCount int64        `json:"comments_count"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}
