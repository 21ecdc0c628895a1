// Package push delivers best-effort push notifications through an external
// gateway. Delivery never participates in request handling: callers enqueue
// after their state mutation commits and ignore the outcome.
package push

import "context"

type Gateway interface {
	// Send pushes one message to a set of device tokens. Empty or invalid
	// token sets are skipped silently; a non-nil error only means the whole
	// batch failed to leave the process.
	Send(ctx context.Context, deviceTokens []string, title, message string, data map[string]interface{}) error
}

// Noop discards everything. Used in development and in tests that do not
// assert on pushes.
type Noop struct{}

func (Noop) Send(context.Context, []string, string, string, map[string]interface{}) error {
	return nil
}
