package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookmanager/internal/platform/openlibrary"
)

// Service manages a user's book collection on top of the durable store and
// the bibliographic lookup source.
type Service struct {
	repo   Repository
	users  UserDirectory
	lookup LookupClient
}

func NewService(repo Repository, users UserDirectory, lookup LookupClient) *Service {
	return &Service{repo: repo, users: users, lookup: lookup}
}

// AddByISBN resolves metadata for the ISBN and materializes a book owned by
// the user, with no rating set. Re-adding an ISBN creates a second entry
// with the same ISBN; lookups by ISBN then keep returning the first one.
func (s *Service) AddByISBN(ctx context.Context, userID, isbn string) (Book, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return Book{}, err
	}

	data, err := s.lookup.FetchByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, openlibrary.ErrNoData) {
			return Book{}, fmt.Errorf("%w: no data found for ISBN %s", ErrInvalidBook, isbn)
		}
		return Book{}, fmt.Errorf("%w: fetching book data failed for ISBN %s", ErrInvalidBook, isbn)
	}

	b := &Book{
		UserID:        userID,
		ISBN:          isbn,
		Title:         data.Title,
		Authors:       []string{},
		Publisher:     data.Publisher,
		PublishedDate: data.PublishedDate,
		Description:   data.Description,
		CoverURL:      data.CoverURL,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, err
	}
	return *b, nil
}

// GetByISBN finds the first book in the user's collection whose ISBN matches
// case-insensitively.
func (s *Service) GetByISBN(ctx context.Context, userID, isbn string) (Book, error) {
	books, err := s.collection(ctx, userID)
	if err != nil {
		return Book{}, err
	}
	for _, b := range books {
		if strings.EqualFold(b.ISBN, isbn) {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

// UpdateRating sets the book's rating. The range is checked before the user
// or book is resolved.
func (s *Service) UpdateRating(ctx context.Context, userID, isbn string, rating int) (Book, error) {
	if !validRating(rating) {
		return Book{}, ErrInvalidRating
	}

	b, err := s.GetByISBN(ctx, userID, isbn)
	if err != nil {
		return Book{}, err
	}
	b.Rating = &rating
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// UpdateDetails overwrites the provided detail fields of the book.
func (s *Service) UpdateDetails(ctx context.Context, userID, isbn string, upd DetailsUpdate) (Book, error) {
	b, err := s.GetByISBN(ctx, userID, isbn)
	if err != nil {
		return Book{}, err
	}

	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Authors != nil {
		b.Authors = upd.Authors
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.CoverURL != nil {
		b.CoverURL = *upd.CoverURL
	}

	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes the book and, through the repository, all of its reviews.
func (s *Service) Delete(ctx context.Context, userID, isbn string) error {
	b, err := s.GetByISBN(ctx, userID, isbn)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, b.ID)
}

// List returns the whole collection in insertion order, or, when rating is
// given, only the books rated exactly that value. Unrated books never match
// a rating filter.
func (s *Service) List(ctx context.Context, userID string, rating *int) ([]Book, error) {
	if rating != nil && !validRating(*rating) {
		return nil, ErrInvalidRating
	}

	books, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return books, nil
	}

	filtered := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Rating != nil && *b.Rating == *rating {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Search applies the present criteria as a conjunction. Title and author
// match by case-insensitive substring; year matches when its decimal form
// appears anywhere in the free-text published date.
func (s *Service) Search(ctx context.Context, userID string, q SearchQuery) ([]Book, error) {
	books, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := make([]Book, 0, len(books))
	for _, b := range books {
		if q.Title != "" && !containsFold(b.Title, q.Title) {
			continue
		}
		if q.Author != "" && !anyContainsFold(b.Authors, q.Author) {
			continue
		}
		if q.Year != nil && !strings.Contains(b.PublishedDate, strconv.Itoa(*q.Year)) {
			continue
		}
		matched = append(matched, b)
	}
	return matched, nil
}

func (s *Service) collection(ctx context.Context, userID string) ([]Book, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(values []string, substr string) bool {
	for _, v := range values {
		if containsFold(v, substr) {
			return true
		}
	}
	return false
}
