package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated          uint64
	UsersUpdated          uint64
	UsersDeleted          uint64
	SubscriptionsCreated  uint64
	SubscriptionsDeleted  uint64
	UserConflicts         uint64
	SubscriptionConflicts uint64
	UserStaleWrites       uint64
	SubscriptionStale     uint64
}

// InMemoryRecorder stores metrics in memory using atomic counters.
type InMemoryRecorder struct {
	usersCreated          uint64
	usersUpdated          uint64
	usersDeleted          uint64
	subscriptionsCreated  uint64
	subscriptionsDeleted  uint64
	userConflicts         uint64
	subscriptionConflicts uint64
	userStaleWrites       uint64
	subscriptionStale     uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:          atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:          atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:          atomic.LoadUint64(&m.usersDeleted),
		SubscriptionsCreated:  atomic.LoadUint64(&m.subscriptionsCreated),
		SubscriptionsDeleted:  atomic.LoadUint64(&m.subscriptionsDeleted),
		UserConflicts:         atomic.LoadUint64(&m.userConflicts),
		SubscriptionConflicts: atomic.LoadUint64(&m.subscriptionConflicts),
		UserStaleWrites:       atomic.LoadUint64(&m.userStaleWrites),
		SubscriptionStale:     atomic.LoadUint64(&m.subscriptionStale),
	}
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments the user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments the user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncSubscriptionCreated increments the subscription created counter.
func (m *InMemoryRecorder) IncSubscriptionCreated() {
	atomic.AddUint64(&m.subscriptionsCreated, 1)
}

// IncSubscriptionDeleted increments the subscription deleted counter.
func (m *InMemoryRecorder) IncSubscriptionDeleted() {
	atomic.AddUint64(&m.subscriptionsDeleted, 1)
}

// IncConflict increments the duplicate-key conflict counter for an entity.
func (m *InMemoryRecorder) IncConflict(entity string) {
	switch entity {
	case "user":
		atomic.AddUint64(&m.userConflicts, 1)
	case "subscription":
		atomic.AddUint64(&m.subscriptionConflicts, 1)
	}
}

// IncStaleWrite increments the stale-write counter for an entity.
func (m *InMemoryRecorder) IncStaleWrite(entity string) {
	switch entity {
	case "user":
		atomic.AddUint64(&m.userStaleWrites, 1)
	case "subscription":
		atomic.AddUint64(&m.subscriptionStale, 1)
	}
}
