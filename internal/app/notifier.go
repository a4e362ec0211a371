package app

// FailureNotifier pushes an out-of-band alert when a maintenance job
// fails. Implementations are best-effort; callers log and move on if the
// alert itself cannot be delivered.
type FailureNotifier interface {
	NotifyFailure(jobName string, jobErr error) error
}
