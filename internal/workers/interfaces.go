// Package workers runs the server's background loops: the gRPC health
// probe and the weather cache sweep. Workers share one context and stop
// together.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the worker
// fails; a nil return after cancellation is a clean stop.
//
// Example implementation:
//
//	type sweeper struct{}
//
//	func (s *sweeper) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
