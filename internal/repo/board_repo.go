package repo

import (
	"context"

	dom "github.com/MarcoAlber/KanMind/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BoardRepo interface {
	Create(ctx context.Context, ownerID int64, title string) (dom.Board, error)
	GetByID(ctx context.Context, id int64) (dom.Board, error)
	GetWithCounts(ctx context.Context, id int64) (dom.Board, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]dom.Board, error)
	UpdateTitle(ctx context.Context, id int64, title string) (dom.Board, error)
	Delete(ctx context.Context, id int64) error
}

type PGBoardRepo struct {
	db *pgxpool.Pool
}

func NewPGBoardRepo(db *pgxpool.Pool) *PGBoardRepo {
	return &PGBoardRepo{db: db}
}

func (r *PGBoardRepo) Create(ctx context.Context, ownerID int64, title string) (dom.Board, error) {
	query := `
		INSERT INTO boards (title, owner_id)
		VALUES ($1, $2)
		RETURNING id, title, owner_id, created_at, updated_at`
	var b dom.Board
	err := r.db.QueryRow(ctx, query, title, ownerID).Scan(
		&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PGBoardRepo) GetByID(ctx context.Context, id int64) (dom.Board, error) {
	query := `SELECT id, title, owner_id, created_at, updated_at FROM boards WHERE id = $1`
	var b dom.Board
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PGBoardRepo) GetWithCounts(ctx context.Context, id int64) (dom.Board, error) {
	query := `
		SELECT b.id, b.title, b.owner_id, b.created_at, b.updated_at,
		       COUNT(t.id),
		       COUNT(t.id) FILTER (WHERE t.status = 'to-do'),
		       COUNT(t.id) FILTER (WHERE t.priority = 'high')
		FROM boards b
		LEFT JOIN tasks t ON t.board_id = b.id
		WHERE b.id = $1
		GROUP BY b.id`
	var b dom.Board
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
		&b.TicketCount, &b.ToDoCount, &b.HighPrioCount,
	)
	return b, err
}

func (r *PGBoardRepo) ListByOwner(ctx context.Context, ownerID int64) ([]dom.Board, error) {
	query := `
		SELECT b.id, b.title, b.owner_id, b.created_at, b.updated_at,
		       COUNT(t.id),
		       COUNT(t.id) FILTER (WHERE t.status = 'to-do'),
		       COUNT(t.id) FILTER (WHERE t.priority = 'high')
		FROM boards b
		LEFT JOIN tasks t ON t.board_id = b.id
		WHERE b.owner_id = $1
		GROUP BY b.id
		ORDER BY b.created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Board
	for rows.Next() {
		var b dom.Board
		if err := rows.Scan(&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
			&b.TicketCount, &b.ToDoCount, &b.HighPrioCount); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *PGBoardRepo) UpdateTitle(ctx context.Context, id int64, title string) (dom.Board, error) {
	query := `
		UPDATE boards SET title = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, owner_id, created_at, updated_at`
	var b dom.Board
	err := r.db.QueryRow(ctx, query, id, title).Scan(
		&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Delete removes the board, its tasks and their comments in one transaction.
// The cascade is explicit rather than delegated to FK ON DELETE rules so the
// contract stays visible and testable.
func (r *PGBoardRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE board_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE board_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
