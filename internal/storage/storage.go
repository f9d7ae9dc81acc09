package storage

import (
	"context"
	"errors"
)

// Well-known slots. Names match the keys the original demo used so that
// exported data stays recognizable across backends.
const (
	KeyCart          = "cart"
	KeyBookings      = "bookings"
	KeyPendingUsers  = "demo.pendingUsers"
	KeyUsers         = "demo.users"
	KeySession       = "demo.currentUser"
	KeySubscriptions = "demo.subscriptions"
	KeyLastCheckout  = "lastBooking"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence seam shared by all stores. Values are JSON
// blobs; callers own (de)serialization.
// Consumers define this interface, not the backend implementations.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
