// Package inmemory provides an in-memory store implementing the service
// layer's persistence interfaces. It mirrors the PostgreSQL repository's
// error contract (sentinel errors, version checks, cascade delete) and is
// used by tests in place of a live database.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/subtrack/subtrack/internal/model"
	"github.com/subtrack/subtrack/internal/repository"
)

// Store holds users and subscriptions in process memory.
type Store struct {
	mu       sync.Mutex
	users    map[int64]*model.User
	subs     map[int64]*model.Subscription
	nextUser int64
	nextSub  int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[int64]*model.User),
		subs:     make(map[int64]*model.Subscription),
		nextUser: 1,
		nextSub:  1,
	}
}

// CreateUser inserts a new user, enforcing username uniqueness.
func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	user.ID = s.nextUser
	s.nextUser++
	user.Version = 0
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// GetUserByID returns a copy of the stored user.
func (s *Store) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByUsername returns a copy of the stored user with that username.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// UpdateUser applies a version-checked username replacement.
func (s *Store) UpdateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok || stored.Version != user.Version {
		return repository.ErrVersionConflict
	}

	for _, u := range s.users {
		if u.ID != user.ID && u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	stored.Username = user.Username
	stored.Version++
	stored.UpdatedAt = time.Now()
	user.Version = stored.Version
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

// DeleteUserCascade removes a user and all owned subscriptions atomically.
func (s *Store) DeleteUserCascade(_ context.Context, id, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[id]
	if !ok || stored.Version != version {
		return repository.ErrVersionConflict
	}

	for subID, sub := range s.subs {
		if sub.UserID == id {
			delete(s.subs, subID)
		}
	}
	delete(s.users, id)
	return nil
}

// CreateSubscription inserts a new subscription, enforcing the (owner, name)
// uniqueness and the owner foreign key.
func (s *Store) CreateSubscription(_ context.Context, sub *model.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[sub.UserID]; !ok {
		return repository.ErrUserNotFound
	}

	for _, existing := range s.subs {
		if existing.UserID == sub.UserID && existing.Name == sub.Name {
			return repository.ErrSubscriptionExists
		}
	}

	sub.ID = s.nextSub
	s.nextSub++
	sub.Version = 0
	sub.CreatedAt = time.Now()

	cp := *sub
	s.subs[sub.ID] = &cp
	return nil
}

// GetSubscriptionByID returns a copy of the stored subscription.
func (s *Store) GetSubscriptionByID(_ context.Context, id int64) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

// GetSubscriptionByOwnerAndName returns the subscription with that owner and name.
func (s *Store) GetSubscriptionByOwnerAndName(_ context.Context, ownerID int64, name string) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if sub.UserID == ownerID && sub.Name == name {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, repository.ErrSubscriptionNotFound
}

// ListSubscriptionsByOwner returns all subscriptions of a user ordered by id.
func (s *Store) ListSubscriptionsByOwner(_ context.Context, ownerID int64) ([]*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Subscription, 0)
	for _, sub := range s.subs {
		if sub.UserID == ownerID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteSubscription removes a subscription scoped to (owner, id) with a
// version check. An owner mismatch or a missing row deletes nothing and
// reports no error, matching the PostgreSQL delete predicate.
func (s *Store) DeleteSubscription(_ context.Context, ownerID, id, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok || sub.UserID != ownerID {
		return nil
	}
	if sub.Version != version {
		return repository.ErrVersionConflict
	}
	delete(s.subs, id)
	return nil
}

// TopSubscriptionNames returns the n most frequent names in descending
// count order, matching the repository contract: membership only, no
// presentation ordering.
func (s *Store) TopSubscriptionNames(_ context.Context, n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, sub := range s.subs {
		counts[sub.Name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return counts[names[i]] > counts[names[j]] })

	if len(names) > n {
		names = names[:n]
	}
	return names, nil
}
