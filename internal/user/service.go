package user

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. The email pre-check and the insert are two
// separate steps; the unique constraint on the email column is the backstop
// when two registrations race.
func (s *Service) Create(ctx context.Context, name, email string) (User, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return User{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	newUser := &User{
		Name:  name,
		Email: email,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return User{}, err
	}
	return *newUser, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Update overwrites name and email of an existing user.
func (s *Service) Update(ctx context.Context, id, name, email string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Name = name
	u.Email = email
	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete removes a user and cascades over the owned books and their reviews.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
