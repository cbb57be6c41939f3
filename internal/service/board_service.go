package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/MarcoAlber/KanMind/internal/access"
	"github.com/MarcoAlber/KanMind/internal/cache"
	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/repo"

	"golang.org/x/sync/singleflight"
)

// BoardService handles board CRUD for the owning user.
type BoardService struct {
	boards repo.BoardRepo
	tasks  repo.TaskRepo
	guard  *access.Guard
	cache  *cache.ListCache
	sf     singleflight.Group
}

// NewBoardService creates a BoardService. If c is nil, caching is disabled.
func NewBoardService(boards repo.BoardRepo, tasks repo.TaskRepo, guard *access.Guard, c *cache.ListCache) *BoardService {
	return &BoardService{boards: boards, tasks: tasks, guard: guard, cache: c}
}

// List returns all boards owned by userID, with task counts.
func (s *BoardService) List(ctx context.Context, userID int64) ([]dom.Board, error) {
	if s.cache != nil {
		key := "boards:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetBoards(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.boards.ListByOwner(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetBoards(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Board), nil
	}
	return s.boards.ListByOwner(ctx, userID)
}

// Create creates a board owned by userID.
func (s *BoardService) Create(ctx context.Context, userID int64, title string) (dom.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Board{}, ErrValidation
	}
	b, err := s.boards.Create(ctx, userID, title)
	if err != nil {
		return dom.Board{}, err
	}
	s.invalidate(ctx, userID)
	return b, nil
}

// Get returns the board and its tasks if userID owns it.
func (s *BoardService) Get(ctx context.Context, userID, boardID int64) (dom.Board, []dom.Task, error) {
	b, err := s.guard.BoardOwned(ctx, userID, boardID)
	if err != nil {
		return dom.Board{}, nil, err
	}
	tasks, err := s.tasks.ListByBoard(ctx, boardID)
	if err != nil {
		return dom.Board{}, nil, err
	}
	return b, tasks, nil
}

// Update changes the board title. A nil title leaves it untouched; the
// owner is never changed.
func (s *BoardService) Update(ctx context.Context, userID, boardID int64, title *string) (dom.Board, error) {
	if _, err := s.guard.BoardOwned(ctx, userID, boardID); err != nil {
		return dom.Board{}, err
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return dom.Board{}, ErrValidation
		}
		if _, err := s.boards.UpdateTitle(ctx, boardID, trimmed); err != nil {
			return dom.Board{}, err
		}
		s.invalidate(ctx, userID)
	}
	return s.boards.GetWithCounts(ctx, boardID)
}

// Delete removes the board with its tasks and comments.
func (s *BoardService) Delete(ctx context.Context, userID, boardID int64) error {
	if _, err := s.guard.BoardOwned(ctx, userID, boardID); err != nil {
		return err
	}
	// Assignees and reviewers of the doomed tasks have stale cached lists too.
	affected := []int64{userID}
	if tasks, err := s.tasks.ListByBoard(ctx, boardID); err == nil {
		for _, t := range tasks {
			if t.Assignee != nil {
				affected = append(affected, t.Assignee.ID)
			}
			if t.Reviewer != nil {
				affected = append(affected, t.Reviewer.ID)
			}
		}
	}
	if err := s.boards.Delete(ctx, boardID); err != nil {
		return err
	}
	s.invalidate(ctx, affected...)
	return nil
}

func (s *BoardService) invalidate(ctx context.Context, userIDs ...int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateUsers(ctx, userIDs...)
	}
}
