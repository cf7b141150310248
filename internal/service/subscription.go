package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/subtrack/subtrack/internal/errs"
	"github.com/subtrack/subtrack/internal/metrics"
	"github.com/subtrack/subtrack/internal/model"
	"github.com/subtrack/subtrack/internal/repository"
)

// TopSubscriptionsLimit is the number of names returned by the popularity
// ranking endpoint.
const TopSubscriptionsLimit = 3

// SubscriptionStore is the persistence surface the subscription service
// depends on. *repository.Repository implements it; tests substitute fakes.
type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	GetSubscriptionByID(ctx context.Context, id int64) (*model.Subscription, error)
	GetSubscriptionByOwnerAndName(ctx context.Context, ownerID int64, name string) (*model.Subscription, error)
	ListSubscriptionsByOwner(ctx context.Context, ownerID int64) ([]*model.Subscription, error)
	DeleteSubscription(ctx context.Context, ownerID, id, version int64) error
	TopSubscriptionNames(ctx context.Context, n int) ([]string, error)
}

// SubscriptionService handles subscription business logic: non-blank names,
// per-owner name uniqueness and referential integrity against users.
type SubscriptionService struct {
	store   SubscriptionStore
	users   *UserService
	metrics metrics.Recorder
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(store SubscriptionStore, users *UserService, recorder metrics.Recorder) *SubscriptionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SubscriptionService{
		store:   store,
		users:   users,
		metrics: recorder,
	}
}

// CreateSubscriptionInput defines input for creating a subscription.
type CreateSubscriptionInput struct {
	Name string
}

// GetByID returns the subscription with the given id.
func (s *SubscriptionService) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	sub, err := s.store.GetSubscriptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, errs.NotFound("Subscription with id %d not found.", id)
		}
		return nil, fmt.Errorf("get subscription %d: %w", id, err)
	}
	return sub, nil
}

// GetByOwnerAndName looks up a subscription by its owner and name.
// Absence is not an error: it returns (nil, nil) when no such pair exists.
func (s *SubscriptionService) GetByOwnerAndName(ctx context.Context, name string, ownerID int64) (*model.Subscription, error) {
	sub, err := s.store.GetSubscriptionByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription by owner and name: %w", err)
	}
	return sub, nil
}

// ListByOwner returns all subscriptions of a user. An unknown owner yields
// an empty slice, never an error.
func (s *SubscriptionService) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Subscription, error) {
	subs, err := s.store.ListSubscriptionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions of user %d: %w", ownerID, err)
	}
	return subs, nil
}

// TopPopular returns the n most popular subscription names. The store
// decides membership by descending occurrence count; the selected names are
// then sorted alphabetically for presentation. Count and name are two
// distinct sort keys: ties in count are broken arbitrarily at the
// membership stage, but the output is always alphabetical.
func (s *SubscriptionService) TopPopular(ctx context.Context, n int) ([]string, error) {
	names, err := s.store.TopSubscriptionNames(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("top subscriptions: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Create validates and persists a new subscription for the given owner with
// version 0. The owner is resolved first; a missing owner propagates as
// not-found. Duplicate (owner, name) pairs are pre-checked, with the store's
// composite unique constraint as the race-safe second layer.
func (s *SubscriptionService) Create(ctx context.Context, input CreateSubscriptionInput, ownerID int64) (*model.Subscription, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, errs.InvalidInput("Subscription.name cannot be empty or missing")
	}

	existing, err := s.GetByOwnerAndName(ctx, input.Name, owner.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.IncConflict("subscription")
		return nil, errs.Conflict("Attempted duplicate subscription creation for user %s: %s", owner.Username, input.Name)
	}

	sub := &model.Subscription{Name: input.Name, UserID: owner.ID}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		switch {
		case errors.Is(err, repository.ErrSubscriptionExists):
			// A concurrent creator won the race between pre-check and insert.
			s.metrics.IncConflict("subscription")
			return nil, errs.Conflict("Subscription already exists")
		case errors.Is(err, repository.ErrUserNotFound):
			// The owner was deleted between resolve and insert.
			return nil, errs.NotFound("User not found with id: %d", ownerID)
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	s.metrics.IncSubscriptionCreated()
	return sub, nil
}

// Delete removes a subscription scoped to (owner, id). The store-level
// delete predicate is the authority: if the id exists but belongs to a
// different owner, nothing is deleted and no error is reported. An id that
// does not exist at all is not-found; a concurrent modification of the row
// is a stale write.
func (s *SubscriptionService) Delete(ctx context.Context, ownerID, subscriptionID int64) error {
	sub, err := s.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteSubscription(ctx, ownerID, sub.ID, sub.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.metrics.IncStaleWrite("subscription")
			return errs.StaleWrite("Failed to delete subscription due to concurrent modification")
		}
		return fmt.Errorf("delete subscription %d of user %d: %w", subscriptionID, ownerID, err)
	}

	s.metrics.IncSubscriptionDeleted()
	return nil
}
