package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarcoAlber/KanMind/internal/access"
	"github.com/MarcoAlber/KanMind/internal/cache"
	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/repo"
)

// CommentService handles comments on tasks the user can reach.
type CommentService struct {
	comments repo.CommentRepo
	tasks    repo.TaskRepo
	guard    *access.Guard
	cache    *cache.ListCache
}

// NewCommentService creates a CommentService. If c is nil, caching is disabled.
func NewCommentService(comments repo.CommentRepo, tasks repo.TaskRepo, guard *access.Guard, c *cache.ListCache) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, guard: guard, cache: c}
}

// ListForTask returns the comments on a task owned by userID's board.
func (s *CommentService) ListForTask(ctx context.Context, userID, taskID int64) ([]dom.Comment, error) {
	if _, err := s.guard.TaskOwned(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}

// Create adds a comment authored by userID to a task on their board.
func (s *CommentService) Create(ctx context.Context, userID, taskID int64, content string) (dom.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dom.Comment{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	t, err := s.guard.TaskOwned(ctx, userID, taskID)
	if err != nil {
		return dom.Comment{}, err
	}
	c, err := s.comments.Create(ctx, taskID, userID, content)
	if err != nil {
		return dom.Comment{}, err
	}
	// comments_count changed for everyone listing this task.
	s.invalidateForTask(ctx, userID, t)
	return c, nil
}

// Delete removes a comment if userID authored it or owns the board. The
// comment must belong to taskID, the task named in the request path.
func (s *CommentService) Delete(ctx context.Context, userID, taskID, commentID int64) error {
	c, err := s.guard.CommentDeletable(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if c.TaskID != taskID {
		return ErrNotFound
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	if t, err := s.tasks.GetByID(ctx, c.TaskID); err == nil {
		s.invalidateForTask(ctx, userID, t)
	}
	return nil
}

func (s *CommentService) invalidateForTask(ctx context.Context, userID int64, t dom.Task) {
	if s.cache == nil {
		return
	}
	ids := append([]int64{userID}, taskUserIDs(t)...)
	_ = s.cache.InvalidateUsers(ctx, ids...)
}
