// Package storage persists the guest snapshot in a session-scoped key-value
// area.
package storage

import (
	"context"
	"errors"
)

// DefaultKey holds the guest snapshot unless configured otherwise.
const DefaultKey = "fintrack-guest-store"

// ErrQuotaExceeded is returned when a write does not fit the area's quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KeyValue is a session-scoped byte store. Values live as long as the session.
type KeyValue interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
