package dto

// CreateBoardRequest is the JSON body for POST /api/boards/.
type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// UpdateBoardRequest is the JSON body for PATCH /api/boards/{board_id}/.
type UpdateBoardRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=255"`
}

// BoardResponse is a board summary with task counts.
type BoardResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OwnerID       int64  `json:"owner_id"`
	TicketCount   int64  `json:"ticket_count"`
	ToDoCount     int64  `json:"tasks_to_do_count"`
	HighPrioCount int64  `json:"tasks_high_prio_count"`
}

// BoardDetailResponse is a board with its tasks.
type BoardDetailResponse struct {
	ID      int64          `json:"id"`
	Title   string         `json:"title"`
	OwnerID int64          `json:"owner_id"`
	Tasks   []TaskResponse `json:"tasks"`
}

// ListBoardsResponse wraps the board list.
type ListBoardsResponse struct {
	Items []BoardResponse `json:"items"`
}
