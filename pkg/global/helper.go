package global

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single store round trip.
const DefaultTimeout = 10 * time.Second

// GetDefaultTimer derives a context from parent that expires after DefaultTimeout.
func GetDefaultTimer(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, DefaultTimeout)
}
