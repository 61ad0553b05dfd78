package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, rv *Review) error {
	const query = `
	INSERT INTO reviews (id, book_id, rating, review_text)
	VALUES (gen_random_uuid(), $1, $2, $3)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, rv.BookID, rv.Rating, rv.ReviewText).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Review, error) {
	const query = `
	SELECT id, book_id, rating, review_text, created_at, updated_at
	FROM reviews WHERE id = $1 LIMIT 1
	`
	var rv Review
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).
		Scan(&rv.ID, &rv.BookID, &rv.Rating, &rv.ReviewText, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string) ([]Review, error) {
	const query = `
	SELECT id, book_id, rating, review_text, created_at, updated_at
	FROM reviews WHERE book_id = $1
	ORDER BY created_at, id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.Rating, &rv.ReviewText, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, rv *Review) error {
	const query = `
	UPDATE reviews SET rating = $1, review_text = $2, updated_at = now()
	WHERE id = $3
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, rv.Rating, rv.ReviewText, rv.ID).Scan(&rv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
