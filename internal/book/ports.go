package book

import (
	"context"

	"bookmanager/internal/platform/openlibrary"
	"bookmanager/internal/user"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book storage. ListByUser returns the
// collection in insertion order. Delete removes the book's reviews together
// with the book.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	ListByUser(ctx context.Context, userID string) ([]Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, bookID string) error
}

// UserDirectory is the slice of the user service this package needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// LookupClient resolves bibliographic metadata for an ISBN.
type LookupClient interface {
	FetchByISBN(ctx context.Context, isbn string) (openlibrary.BookData, error)
}
