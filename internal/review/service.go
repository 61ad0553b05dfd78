package review

import (
	"context"
	"errors"
)

// Service manages reviews scoped to a book resolved from a (user, isbn)
// pair. A review id on its own is never enough: it must also belong to the
// resolved book.
type Service struct {
	repo  Repository
	books BookResolver
}

func NewService(repo Repository, books BookResolver) *Service {
	return &Service{repo: repo, books: books}
}

// Add persists a new review bound to the resolved book. Rating and text are
// validated at the transport boundary before this is called.
func (s *Service) Add(ctx context.Context, userID, isbn string, rating int, text string) (Review, error) {
	b, err := s.books.GetByISBN(ctx, userID, isbn)
	if err != nil {
		return Review{}, err
	}

	rv := &Review{
		BookID:     b.ID,
		Rating:     rating,
		ReviewText: text,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return Review{}, err
	}
	return *rv, nil
}

// List returns all reviews of the resolved book in storage order.
func (s *Service) List(ctx context.Context, userID, isbn string) ([]Review, error) {
	b, err := s.books.GetByISBN(ctx, userID, isbn)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBook(ctx, b.ID)
}

// Update overwrites rating and text of a review that belongs to the
// resolved book.
func (s *Service) Update(ctx context.Context, userID, isbn, reviewID string, rating int, text string) (Review, error) {
	rv, err := s.resolve(ctx, userID, isbn, reviewID)
	if err != nil {
		return Review{}, err
	}

	rv.Rating = rating
	rv.ReviewText = text
	if err := s.repo.Update(ctx, &rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

// Delete removes a review that belongs to the resolved book.
func (s *Service) Delete(ctx context.Context, userID, isbn, reviewID string) error {
	rv, err := s.resolve(ctx, userID, isbn, reviewID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, rv.ID)
}

// resolve loads the review and enforces that it is bound to the book the
// path resolves to; a review of any other book reports not-found.
func (s *Service) resolve(ctx context.Context, userID, isbn, reviewID string) (Review, error) {
	b, err := s.books.GetByISBN(ctx, userID, isbn)
	if err != nil {
		return Review{}, err
	}

	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	if rv.BookID != b.ID {
		return Review{}, ErrNotFound
	}
	return rv, nil
}
