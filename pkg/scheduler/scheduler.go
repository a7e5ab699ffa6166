package scheduler

// Scheduler defines the interface for a component that drives a recurring
// background refresh for the lifetime of one provider binding.
type Scheduler interface {
	// Start begins the periodic refresh.
	Start()

	// Reset cancels the current loop and re-arms it; called whenever the
	// provider binding changes.
	Reset()

	// Stop cancels the loop entirely; called on shutdown.
	Stop()
}
