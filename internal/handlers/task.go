package handlers

import (
	"net/http"

	"github.com/MarcoAlber/KanMind/internal/auth"
	"github.com/MarcoAlber/KanMind/internal/dto"
	"github.com/MarcoAlber/KanMind/internal/repo"
	"github.com/MarcoAlber/KanMind/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task on an owned board
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Create(c.Request.Context(), userID, req.BoardID, repo.TaskWrite{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        task_id  path      int  true  "Task ID"
// @Param        body     body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200      {object}  dto.TaskResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /tasks/{task_id}/ [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
	}
	if req.DueDate.Present() {
		patch.DueDateSet = true
		patch.DueDate = req.DueDate.Ptr()
	}
	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task and its comments
// @Tags         tasks
// @Security     TokenAuth
// @Param        task_id  path  int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{task_id}/ [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignedToMe godoc
// @Summary      List tasks assigned to the caller
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      500  {object}  map[string]string
// @Router       /tasks/assigned-to-me/ [get]
func (h *TaskHandler) AssignedToMe(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.AssignedTo(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}

// Reviewing godoc
// @Summary      List tasks the caller reviews
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      500  {object}  map[string]string
// @Router       /tasks/reviewing/ [get]
func (h *TaskHandler) Reviewing(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.Reviewing(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}
