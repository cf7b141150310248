package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserUpdated is a no-op.
func (n *NoopRecorder) IncUserUpdated() {}

// IncUserDeleted is a no-op.
func (n *NoopRecorder) IncUserDeleted() {}

// IncSubscriptionCreated is a no-op.
func (n *NoopRecorder) IncSubscriptionCreated() {}

// IncSubscriptionDeleted is a no-op.
func (n *NoopRecorder) IncSubscriptionDeleted() {}

// IncConflict is a no-op.
func (n *NoopRecorder) IncConflict(entity string) {}

// IncStaleWrite is a no-op.
func (n *NoopRecorder) IncStaleWrite(entity string) {}
