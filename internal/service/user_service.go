package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mudgalz/foodie-be/internal/domain"
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetOrCreate returns the account for the given identity subject, creating
// it on first successful identity exchange.
func (s *UserService) GetOrCreate(ctx context.Context, auth0ID, email string) (*domain.User, bool, error) {
	existing, err := s.repo.GetUserByAuth0ID(ctx, auth0ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("look up user: %w", err)
	}

	user := &domain.User{Auth0ID: auth0ID, Email: email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	user, err := s.repo.GetUserByAuth0ID(ctx, auth0ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile overwrites the profile fields unconditionally; it never
// merges. Identity subject and email are not editable here.
func (s *UserService) UpdateProfile(ctx context.Context, id int, name, addressLine, city, zipcode string) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.AddressLine = addressLine
	user.City = city
	user.Zipcode = zipcode

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

var _ UserServiceInterface = (*UserService)(nil)
