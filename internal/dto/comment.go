package dto

import "time"

// CreateCommentRequest is the JSON body for POST /api/tasks/{task_id}/comments/.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentResponse is a single comment with its author's full name.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCommentsResponse wraps the comment list.
type ListCommentsResponse struct {
	Items []CommentResponse `json:"items"`
}
