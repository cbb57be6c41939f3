package repo

import (
	"context"
	"time"

	dom "github.com/MarcoAlber/KanMind/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskWrite carries the writable fields of a task. Board and creator are
// fixed at creation and never part of an update.
type TaskWrite struct {
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  *int64
	ReviewerID  *int64
	DueDate     *time.Time
}

type TaskRepo interface {
	Create(ctx context.Context, boardID, createdBy int64, w TaskWrite) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	Update(ctx context.Context, id int64, w TaskWrite) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
	ListByBoard(ctx context.Context, boardID int64) ([]dom.Task, error)
	ListByAssignee(ctx context.Context, userID int64) ([]dom.Task, error)
	ListByReviewer(ctx context.Context, userID int64) ([]dom.Task, error)
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

// taskSelect joins assignee and reviewer and counts comments per task.
const taskSelect = `
	SELECT t.id, t.board_id, t.title, t.description, t.status, t.priority,
	       t.due_date, t.created_by, t.created_at, t.updated_at,
	       a.id, a.email, a.full_name,
	       r.id, r.email, r.full_name,
	       (SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id)
	FROM tasks t
	LEFT JOIN users a ON a.id = t.assignee_id
	LEFT JOIN users r ON r.id = t.reviewer_id`

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	var aID, rID *int64
	var aEmail, aName, rEmail, rName *string
	err := row.Scan(
		&t.ID, &t.BoardID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		&aID, &aEmail, &aName,
		&rID, &rEmail, &rName,
		&t.CommentsCount,
	)
	if err != nil {
		return dom.Task{}, err
	}
	if aID != nil {
		t.Assignee = &dom.UserRef{ID: *aID, Email: *aEmail, FullName: *aName}
	}
	if rID != nil {
		t.Reviewer = &dom.UserRef{ID: *rID, Email: *rEmail, FullName: *rName}
	}
	return t, nil
}

func (r *PGTaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]dom.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Create(ctx context.Context, boardID, createdBy int64, w TaskWrite) (dom.Task, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO tasks (board_id, title, description, status, priority, assignee_id, reviewer_id, due_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		boardID, w.Title, w.Description, w.Status, w.Priority, w.AssigneeID, w.ReviewerID, w.DueDate, createdBy,
	).Scan(&id)
	if err != nil {
		return dom.Task{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	return scanTask(r.db.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, w TaskWrite) (dom.Task, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE tasks SET title = $2, description = $3, status = $4, priority = $5,
		       assignee_id = $6, reviewer_id = $7, due_date = $8, updated_at = NOW()
		WHERE id = $1`,
		id, w.Title, w.Description, w.Status, w.Priority, w.AssigneeID, w.ReviewerID, w.DueDate,
	)
	if err != nil {
		return dom.Task{}, err
	}
	if ct.RowsAffected() == 0 {
		return dom.Task{}, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

// Delete removes the task and its comments in one transaction.
func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE task_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGTaskRepo) ListByBoard(ctx context.Context, boardID int64) ([]dom.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.board_id = $1 ORDER BY t.created_at ASC`, boardID)
}

func (r *PGTaskRepo) ListByAssignee(ctx context.Context, userID int64) ([]dom.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.assignee_id = $1 ORDER BY t.created_at DESC`, userID)
}

func (r *PGTaskRepo) ListByReviewer(ctx context.Context, userID int64) ([]dom.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.reviewer_id = $1 ORDER BY t.created_at DESC`, userID)
}
