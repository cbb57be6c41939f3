package handlers

import (
	"net/http"

	"github.com/MarcoAlber/KanMind/internal/auth"
	"github.com/MarcoAlber/KanMind/internal/dto"
	"github.com/MarcoAlber/KanMind/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List godoc
// @Summary      List comments on a task
// @Tags         comments
// @Produce      json
// @Security     TokenAuth
// @Param        task_id  path      int  true  "Task ID"
// @Success      200      {object}  dto.ListCommentsResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /tasks/{task_id}/comments/ [get]
func (h *CommentHandler) List(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.ListForTask(c.Request.Context(), userID, taskID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]dto.CommentResponse, len(list))
	for i := range list {
		out[i] = commentToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListCommentsResponse{Items: out})
}

// Create godoc
// @Summary      Add a comment to a task
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        task_id  path      int  true  "Task ID"
// @Param        body     body      dto.CreateCommentRequest  true  "Comment body"
// @Success      201      {object}  dto.CommentResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /tasks/{task_id}/comments/ [post]
func (h *CommentHandler) Create(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	cm, err := h.svc.Create(c.Request.Context(), userID, taskID, req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentToResponse(cm))
}

// Delete godoc
// @Summary      Delete a comment (author or board owner)
// @Tags         comments
// @Security     TokenAuth
// @Param        task_id     path  int  true  "Task ID"
// @Param        comment_id  path  int  true  "Comment ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{task_id}/comments/{comment_id}/ [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), userID, taskID, commentID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
