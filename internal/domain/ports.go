package domain

import "context"

// KV is durable key-value storage for review lists. Get returns
// ErrKeyNotFound for a missing key; any other error means the backend is
// unavailable.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Cache is short-lived JSON storage (image probe results).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ImageChecker reports whether an image URL is currently reachable.
type ImageChecker interface {
	Check(ctx context.Context, url string) (bool, error)
}

// ImageStatus is the cached outcome of probing a doctor's image.
type ImageStatus struct {
	DoctorID  int64  `json:"doctor_id"`
	URL       string `json:"url"`
	Available bool   `json:"available"`
}
