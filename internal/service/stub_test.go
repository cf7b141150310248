package service

import (
	"context"

	"github.com/subtrack/subtrack/internal/model"
)

// stubUserStore lets a test script individual store calls, e.g. to
// simulate a concurrent writer beating the duplicate pre-check.
type stubUserStore struct {
	create        func(ctx context.Context, user *model.User) error
	getByID       func(ctx context.Context, id int64) (*model.User, error)
	getByUsername func(ctx context.Context, username string) (*model.User, error)
	update        func(ctx context.Context, user *model.User) error
	deleteCascade func(ctx context.Context, id, version int64) error
}

func (s *stubUserStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.create(ctx, user)
}

func (s *stubUserStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getByID(ctx, id)
}

func (s *stubUserStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getByUsername(ctx, username)
}

func (s *stubUserStore) UpdateUser(ctx context.Context, user *model.User) error {
	return s.update(ctx, user)
}

func (s *stubUserStore) DeleteUserCascade(ctx context.Context, id, version int64) error {
	return s.deleteCascade(ctx, id, version)
}

// stubSubscriptionStore is the subscription-side counterpart of stubUserStore.
type stubSubscriptionStore struct {
	create         func(ctx context.Context, sub *model.Subscription) error
	getByID        func(ctx context.Context, id int64) (*model.Subscription, error)
	getByOwnerName func(ctx context.Context, ownerID int64, name string) (*model.Subscription, error)
	listByOwner    func(ctx context.Context, ownerID int64) ([]*model.Subscription, error)
	delete         func(ctx context.Context, ownerID, id, version int64) error
	topNames       func(ctx context.Context, n int) ([]string, error)
}

func (s *stubSubscriptionStore) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	return s.create(ctx, sub)
}

func (s *stubSubscriptionStore) GetSubscriptionByID(ctx context.Context, id int64) (*model.Subscription, error) {
	return s.getByID(ctx, id)
}

func (s *stubSubscriptionStore) GetSubscriptionByOwnerAndName(ctx context.Context, ownerID int64, name string) (*model.Subscription, error) {
	return s.getByOwnerName(ctx, ownerID, name)
}

func (s *stubSubscriptionStore) ListSubscriptionsByOwner(ctx context.Context, ownerID int64) ([]*model.Subscription, error) {
	return s.listByOwner(ctx, ownerID)
}

func (s *stubSubscriptionStore) DeleteSubscription(ctx context.Context, ownerID, id, version int64) error {
	return s.delete(ctx, ownerID, id, version)
}

func (s *stubSubscriptionStore) TopSubscriptionNames(ctx context.Context, n int) ([]string, error) {
	return s.topNames(ctx, n)
}
