package handlers

import (
	"net/http"

	"github.com/MarcoAlber/KanMind/internal/auth"
	"github.com/MarcoAlber/KanMind/internal/dto"
	"github.com/MarcoAlber/KanMind/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc *service.BoardService
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// List godoc
// @Summary      List boards owned by the caller
// @Tags         boards
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dto.ListBoardsResponse
// @Failure      500  {object}  map[string]string
// @Router       /boards/ [get]
func (h *BoardHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]dto.BoardResponse, len(list))
	for i := range list {
		out[i] = boardToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListBoardsResponse{Items: out})
}

// Create godoc
// @Summary      Create a board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.CreateBoardRequest  true  "Board body"
// @Success      201   {object}  dto.BoardResponse
// @Failure      400   {object}  map[string]string
// @Router       /boards/ [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	b, err := h.svc.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, boardToResponse(b))
}

// Get godoc
// @Summary      Get a board with its tasks
// @Tags         boards
// @Produce      json
// @Security     TokenAuth
// @Param        board_id  path      int  true  "Board ID"
// @Success      200       {object}  dto.BoardDetailResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /boards/{board_id}/ [get]
func (h *BoardHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	b, tasks, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BoardDetailResponse{
		ID:      b.ID,
		Title:   b.Title,
		OwnerID: b.OwnerID,
		Tasks:   tasksToResponses(tasks),
	})
}

// Update godoc
// @Summary      Update a board title
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        board_id  path      int  true  "Board ID"
// @Param        body      body      dto.UpdateBoardRequest  true  "Partial update"
// @Success      200       {object}  dto.BoardResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /boards/{board_id}/ [patch]
func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	b, err := h.svc.Update(c.Request.Context(), userID, id, req.Title)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardToResponse(b))
}

// Delete godoc
// @Summary      Delete a board and everything on it
// @Tags         boards
// @Security     TokenAuth
// @Param        board_id  path  int  true  "Board ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /boards/{board_id}/ [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "board_id")
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
