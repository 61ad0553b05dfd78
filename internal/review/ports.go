package review

import (
	"context"

	"bookmanager/internal/book"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=review

// Repository defines the contract for review storage. ListByBook returns
// reviews in storage order.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	ListByBook(ctx context.Context, bookID string) ([]Review, error)
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id string) error
}

// BookResolver resolves a (user, isbn) pair to the owning book, with the
// same user/book not-found semantics as the book service.
type BookResolver interface {
	GetByISBN(ctx context.Context, userID, isbn string) (book.Book, error)
}
