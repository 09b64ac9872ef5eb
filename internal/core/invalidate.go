// AngelaMos | 2026
// invalidate.go

package core

import (
	"context"
)

// Invalidator drops derived data cached for a user after one of their
// records changes.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

type nopInvalidator struct{}

func (nopInvalidator) InvalidateUser(context.Context, string) {}

// NopInvalidator is used when no cache is configured.
var NopInvalidator Invalidator = nopInvalidator{}
