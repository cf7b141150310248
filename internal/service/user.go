// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/subtrack/subtrack/internal/errs"
	"github.com/subtrack/subtrack/internal/metrics"
	"github.com/subtrack/subtrack/internal/model"
	"github.com/subtrack/subtrack/internal/repository"
)

// UserStore is the persistence surface the user service depends on.
// *repository.Repository implements it; tests substitute fakes.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUserCascade(ctx context.Context, id, version int64) error
}

// UserService handles user business logic: it enforces the non-blank unique
// username invariant and translates storage conflicts into domain errors.
type UserService struct {
	store   UserStore
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Username string
}

// UpdateUserInput defines input for updating a user.
type UpdateUserInput struct {
	Username string
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errs.NotFound("User not found with id: %d", id)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// GetByUsername looks up a user by username. Absence is not an error:
// it returns (nil, nil) when no user holds the username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

// Create validates and persists a new user with version 0.
//
// Duplicate usernames are detected twice: a cheap pre-check catches the
// common case, and the store's unique constraint catches concurrent
// creators that beat the pre-check. Both surface the same conflict kind.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if input.Username == "" {
		return nil, errs.InvalidInput("Invalid data when trying to create a user: Username is empty or missing")
	}

	existing, err := s.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.IncConflict("user")
		return nil, errs.Conflict("User with this username already exists")
	}

	user := &model.User{Username: input.Username}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			// A concurrent creator won the race between pre-check and insert.
			s.metrics.IncConflict("user")
			return nil, errs.Conflict("Username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserCreated()
	return user, nil
}

// Update replaces the username of an existing user. The write is
// version-checked by the store; a concurrent modification is reported as a
// stale write, distinct from a duplicate-username conflict.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*model.User, error) {
	if input.Username == "" {
		return nil, errs.InvalidInput("Invalid data when updating the user: Username is empty or missing")
	}

	existing, err := s.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		s.metrics.IncConflict("user")
		return nil, errs.Conflict("User with this username already exists")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = input.Username
	if err := s.store.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			s.metrics.IncStaleWrite("user")
			return nil, errs.StaleWrite("Failed to update user due to concurrent modification")
		case errors.Is(err, repository.ErrUsernameExists):
			s.metrics.IncConflict("user")
			return nil, errs.Conflict("Username already exists")
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	s.metrics.IncUserUpdated()
	return user, nil
}

// Delete removes a user and cascades deletion of all owned subscriptions
// within a single atomic unit.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteUserCascade(ctx, user.ID, user.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.metrics.IncStaleWrite("user")
			return errs.StaleWrite("Failed to delete user due to concurrent modification")
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.metrics.IncUserDeleted()
	return nil
}
