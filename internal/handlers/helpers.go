package handlers

import (
	"errors"
	"net/http"
	"strconv"

	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/dto"
	"github.com/MarcoAlber/KanMind/internal/service"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:            t.ID,
		BoardID:       t.BoardID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Priority:      t.Priority,
		Assignee:      t.Assignee,
		Reviewer:      t.Reviewer,
		DueDate:       t.DueDate,
		CommentsCount: t.CommentsCount,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}

func boardToResponse(b dom.Board) dto.BoardResponse {
	return dto.BoardResponse{
		ID:            b.ID,
		Title:         b.Title,
		OwnerID:       b.OwnerID,
		TicketCount:   b.TicketCount,
		ToDoCount:     b.ToDoCount,
		HighPrioCount: b.HighPrioCount,
	}
}

func commentToResponse(cm dom.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        cm.ID,
		Author:    cm.AuthorName,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
	}
}
