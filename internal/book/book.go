package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the ISBN is not present in the user's
// collection.
var ErrNotFound = errors.New("book not found")

// ErrInvalidBook is returned when the bibliographic lookup fails or carries
// no data for the ISBN. The wrapped message names the cause.
var ErrInvalidBook = errors.New("invalid book")

// ErrInvalidRating is returned for ratings outside 1..5 on any write or
// filter path.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Book represents one entry in a user's collection. The owner is fixed at
// creation; ISBN is the natural key within a collection (compared
// case-insensitively). Rating stays nil until explicitly set and is never
// derived from reviews.
type Book struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ISBN          string    `json:"isbn"`
	Title         string    `json:"title"`
	Authors       []string  `json:"authors"`
	Publisher     string    `json:"publisher"`
	PublishedDate string    `json:"published_date"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"cover_url"`
	Rating        *int      `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SearchQuery holds the optional search criteria; present criteria are
// combined with AND.
type SearchQuery struct {
	Title  string
	Author string
	Year   *int
}

// DetailsUpdate carries the optional fields of a details update; nil fields
// are left untouched.
type DetailsUpdate struct {
	Title       *string
	Authors     []string
	Description *string
	CoverURL    *string
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
