package user

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=user

// Repository defines the contract for user storage. Delete removes the user
// together with all owned books and their reviews, in that order.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
