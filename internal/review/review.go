package review

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the review id is absent or the review does
// not belong to the resolved book.
var ErrNotFound = errors.New("review not found")

// Review is a rated free-text note bound to exactly one book. The binding
// never changes after creation.
type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
