// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Entity lifecycle metrics
	IncUserCreated()
	IncUserUpdated()
	IncUserDeleted()
	IncSubscriptionCreated()
	IncSubscriptionDeleted()

	// Consistency enforcement metrics
	IncConflict(entity string)   // entity: "user" or "subscription"
	IncStaleWrite(entity string) // entity: "user" or "subscription"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
