package filesystem

// Observer records retry metrics for filesystem reads. Implementations are
// provided by the metrics package to break the import cycle between
// filesystem and metrics.
type Observer interface {
	// ObserveDuration records the total time spent on an operation,
	// retries included. operation is "read" or "stat".
	ObserveDuration(operation string, durationSeconds float64)
	ObserveRetryAttempt(operation string)
	ObserveRetrySuccess(operation string)
	ObserveRetryFailure(operation string)
	ObserveStaleError(operation string)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

// nopObserver discards every observation.
type nopObserver struct{}

func (nopObserver) ObserveDuration(string, float64) {}
func (nopObserver) ObserveRetryAttempt(string)      {}
func (nopObserver) ObserveRetrySuccess(string)      {}
func (nopObserver) ObserveRetryFailure(string)      {}
func (nopObserver) ObserveStaleError(string)        {}

func (c *RetryConfig) observer() Observer {
	if c.Observer != nil {
		return c.Observer
	}
	if defaultObserver != nil {
		return defaultObserver
	}
	return nopObserver{}
}
