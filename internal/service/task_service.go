package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MarcoAlber/KanMind/internal/access"
	"github.com/MarcoAlber/KanMind/internal/cache"
	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/repo"
	"github.com/MarcoAlber/KanMind/internal/utils"

	"golang.org/x/sync/singleflight"
)

// TaskPatch carries a partial task update. Nil pointer = keep current value.
// For assignee/reviewer, a pointer to 0 clears the field.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *int64
	ReviewerID  *int64
	DueDateSet  bool
	DueDate     *time.Time
}

// TaskService handles task CRUD and the assigned/reviewing lists.
type TaskService struct {
	tasks repo.TaskRepo
	users repo.UserRepo
	guard *access.Guard
	cache *cache.ListCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(tasks repo.TaskRepo, users repo.UserRepo, guard *access.Guard, c *cache.ListCache) *TaskService {
	return &TaskService{tasks: tasks, users: users, guard: guard, cache: c}
}

// Create creates a task on a board owned by userID.
func (s *TaskService) Create(ctx context.Context, userID, boardID int64, w repo.TaskWrite) (dom.Task, error) {
	if _, err := s.guard.BoardOwned(ctx, userID, boardID); err != nil {
		return dom.Task{}, err
	}
	w.Title = strings.TrimSpace(w.Title)
	w.Description = strings.TrimSpace(w.Description)
	if w.Title == "" {
		return dom.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if w.Status == "" {
		w.Status = dom.StatusToDo
	}
	if w.Priority == "" {
		w.Priority = dom.PriorityMedium
	}
	if err := s.validateWrite(ctx, w); err != nil {
		return dom.Task{}, err
	}
	t, err := s.tasks.Create(ctx, boardID, userID, w)
	if err != nil {
		// Assignee or reviewer deleted between the existence check and the insert.
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Task{}, fmt.Errorf("%w: assignee or reviewer does not exist", ErrValidation)
		}
		return dom.Task{}, err
	}
	s.invalidate(ctx, userID, w.AssigneeID, w.ReviewerID)
	return t, nil
}

// Update applies a partial update to a task on a board owned by userID.
// The board reference is immutable.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, p TaskPatch) (dom.Task, error) {
	existing, err := s.guard.TaskOwned(ctx, userID, taskID)
	if err != nil {
		return dom.Task{}, err
	}

	w := repo.TaskWrite{
		Title:       existing.Title,
		Description: existing.Description,
		Status:      existing.Status,
		Priority:    existing.Priority,
		DueDate:     existing.DueDate,
	}
	if existing.Assignee != nil {
		w.AssigneeID = &existing.Assignee.ID
	}
	if existing.Reviewer != nil {
		w.ReviewerID = &existing.Reviewer.ID
	}

	if p.Title != nil {
		w.Title = strings.TrimSpace(*p.Title)
		if w.Title == "" {
			return dom.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
		}
	}
	if p.Description != nil {
		w.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Priority != nil {
		w.Priority = *p.Priority
	}
	if p.AssigneeID != nil {
		if *p.AssigneeID == 0 {
			w.AssigneeID = nil
		} else {
			w.AssigneeID = p.AssigneeID
		}
	}
	if p.ReviewerID != nil {
		if *p.ReviewerID == 0 {
			w.ReviewerID = nil
		} else {
			w.ReviewerID = p.ReviewerID
		}
	}
	if p.DueDateSet {
		w.DueDate = p.DueDate
	}
	if err := s.validateWrite(ctx, w); err != nil {
		return dom.Task{}, err
	}

	t, err := s.tasks.Update(ctx, taskID, w)
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Task{}, fmt.Errorf("%w: assignee or reviewer does not exist", ErrValidation)
		}
		return dom.Task{}, err
	}
	s.invalidate(ctx, userID, w.AssigneeID, w.ReviewerID, taskUserIDs(existing)...)
	return t, nil
}

// Delete removes the task with its comments.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	existing, err := s.guard.TaskOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidate(ctx, userID, nil, nil, taskUserIDs(existing)...)
	return nil
}

// AssignedTo returns tasks where userID is the assignee.
func (s *TaskService) AssignedTo(ctx context.Context, userID int64) ([]dom.Task, error) {
	if s.cache != nil {
		key := "assigned:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetAssigned(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.tasks.ListByAssignee(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetAssigned(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.tasks.ListByAssignee(ctx, userID)
}

// Reviewing returns tasks where userID is the reviewer.
func (s *TaskService) Reviewing(ctx context.Context, userID int64) ([]dom.Task, error) {
	if s.cache != nil {
		key := "reviewing:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetReviewing(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.tasks.ListByReviewer(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetReviewing(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.tasks.ListByReviewer(ctx, userID)
}

func (s *TaskService) validateWrite(ctx context.Context, w repo.TaskWrite) error {
	if !dom.ValidStatus(w.Status) {
		return fmt.Errorf("%w: status must be one of to-do, in-progress, review, done", ErrValidation)
	}
	if !dom.ValidPriority(w.Priority) {
		return fmt.Errorf("%w: priority must be one of low, medium, high", ErrValidation)
	}
	if err := s.checkUserExists(ctx, w.AssigneeID, "assignee"); err != nil {
		return err
	}
	return s.checkUserExists(ctx, w.ReviewerID, "reviewer")
}

func (s *TaskService) checkUserExists(ctx context.Context, id *int64, role string) error {
	if id == nil {
		return nil
	}
	exists, err := s.users.ExistsByID(ctx, *id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s %d does not exist", ErrValidation, role, *id)
	}
	return nil
}

func taskUserIDs(t dom.Task) []int64 {
	var ids []int64
	if t.Assignee != nil {
		ids = append(ids, t.Assignee.ID)
	}
	if t.Reviewer != nil {
		ids = append(ids, t.Reviewer.ID)
	}
	return ids
}

func (s *TaskService) invalidate(ctx context.Context, ownerID int64, assignee, reviewer *int64, extra ...int64) {
	if s.cache == nil {
		return
	}
	ids := []int64{ownerID}
	if assignee != nil {
		ids = append(ids, *assignee)
	}
	if reviewer != nil {
		ids = append(ids, *reviewer)
	}
	ids = append(ids, extra...)
	_ = s.cache.InvalidateUsers(ctx, ids...)
}
