package repo

import (
	"context"

	dom "github.com/MarcoAlber/KanMind/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, taskID, authorID int64, content string) (dom.Comment, error)
	GetByID(ctx context.Context, id int64) (dom.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]dom.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type PGCommentRepo struct {
	db *pgxpool.Pool
}

func NewPGCommentRepo(db *pgxpool.Pool) *PGCommentRepo {
	return &PGCommentRepo{db: db}
}

func (r *PGCommentRepo) Create(ctx context.Context, taskID, authorID int64, content string) (dom.Comment, error) {
	query := `
		WITH ins AS (
			INSERT INTO comments (task_id, author_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, task_id, author_id, content, created_at
		)
		SELECT ins.id, ins.task_id, ins.author_id, u.full_name, ins.content, ins.created_at
		FROM ins JOIN users u ON u.id = ins.author_id`
	var c dom.Comment
	err := r.db.QueryRow(ctx, query, taskID, authorID, content).Scan(
		&c.ID, &c.TaskID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt,
	)
	return c, err
}

func (r *PGCommentRepo) GetByID(ctx context.Context, id int64) (dom.Comment, error) {
	query := `
		SELECT c.id, c.task_id, c.author_id, u.full_name, c.content, c.created_at
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`
	var c dom.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TaskID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt,
	)
	return c, err
}

func (r *PGCommentRepo) ListByTask(ctx context.Context, taskID int64) ([]dom.Comment, error) {
	query := `
		SELECT c.id, c.task_id, c.author_id, u.full_name, c.content, c.created_at
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Comment
	for rows.Next() {
		var c dom.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCommentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}
