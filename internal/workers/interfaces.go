// Package workers runs the background maintenance of the catalog.
// It defines the Worker interface, a periodic job that sleeps a shorter
// backoff after a failed iteration, and a Workers aggregate that runs
// every job until its context ends.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled. An iteration that has already started
// is allowed to finish, so Run may return shortly after cancellation.
type Worker interface {
	Run(ctx context.Context)
}
