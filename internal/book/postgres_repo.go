package book

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

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, user_id, isbn, title, authors, publisher, published_date, description, cover_url, rating)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		b.UserID, b.ISBN, b.Title, b.Authors, b.Publisher,
		b.PublishedDate, b.Description, b.CoverURL, b.Rating,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// ListByUser returns the user's collection in insertion order.
func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Book, error) {
	const query = `
	SELECT id, user_id, isbn, title, authors, publisher, published_date, description, cover_url, rating, created_at, updated_at
	FROM books
	WHERE user_id = $1
	ORDER BY seq
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.ISBN, &b.Title, &b.Authors, &b.Publisher,
			&b.PublishedDate, &b.Description, &b.CoverURL, &b.Rating,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Update persists the mutable fields; owner and ISBN never change.
func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
	UPDATE books
	SET title = $1, authors = $2, description = $3, cover_url = $4, rating = $5, updated_at = now()
	WHERE id = $6
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Authors, b.Description, b.CoverURL, b.Rating, b.ID,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes the book's reviews first, then the book, in one
// transaction. The review foreign key has no ON DELETE action; this ordered
// sequence is the cascade.
func (r *PostgresRepo) Delete(ctx context.Context, bookID string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, `DELETE FROM reviews WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	tag, err := tx.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(timeoutCtx)
}
