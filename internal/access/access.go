// Package access is the ownership gate in front of the repositories.
// Every read and write of boards, tasks and comments goes through it, so a
// user only ever observes or mutates data on boards they own.
package access

import (
	"context"
	"errors"

	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/repo"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound covers both missing resources and resources owned by
	// someone else: board and task IDs must not be enumerable.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the resource is reachable but the
	// requested action is not allowed for this user.
	ErrForbidden = errors.New("forbidden")
)

// Guard answers ownership questions. It holds no state beyond the repos.
type Guard struct {
	boards   repo.BoardRepo
	tasks    repo.TaskRepo
	comments repo.CommentRepo
}

func NewGuard(boards repo.BoardRepo, tasks repo.TaskRepo, comments repo.CommentRepo) *Guard {
	return &Guard{boards: boards, tasks: tasks, comments: comments}
}

// BoardOwned returns the board if userID owns it. A board that does not
// exist and a board owned by another user both come back as ErrNotFound.
func (g *Guard) BoardOwned(ctx context.Context, userID, boardID int64) (dom.Board, error) {
	b, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Board{}, ErrNotFound
		}
		return dom.Board{}, err
	}
	if b.OwnerID != userID {
		return dom.Board{}, ErrNotFound
	}
	return b, nil
}

// TaskOwned returns the task if userID owns the board it belongs to.
func (g *Guard) TaskOwned(ctx context.Context, userID, taskID int64) (dom.Task, error) {
	t, err := g.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	if _, err := g.BoardOwned(ctx, userID, t.BoardID); err != nil {
		return dom.Task{}, err
	}
	return t, nil
}

// CommentDeletable returns the comment if userID may delete it: the author
// may, and so may the owner of the board the comment's task belongs to.
// Anyone else gets ErrForbidden.
func (g *Guard) CommentDeletable(ctx context.Context, userID, commentID int64) (dom.Comment, error) {
	c, err := g.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	if c.AuthorID == userID {
		return c, nil
	}
	t, err := g.tasks.GetByID(ctx, c.TaskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	b, err := g.boards.GetByID(ctx, t.BoardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	if b.OwnerID != userID {
		return dom.Comment{}, ErrForbidden
	}
	return c, nil
}
