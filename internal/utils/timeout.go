package utils

import (
	"context"
	"time"
)

// DefaultDBTimeout caps every repository call. Checkout holds row locks for
// the duration of its transaction, so queries that outlive the deadline are
// cancelled instead of queueing behind it.
const DefaultDBTimeout = 5 * time.Second

// WithDBTimeout derives the per-query context the repositories run under.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
