package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrKeyNotFound        = errors.New("kv: key not found")
	ErrInvalidReview      = errors.New("review text is empty, too short, too long or contains disallowed content")
	ErrStorageUnavailable = errors.New("review storage unavailable")
)
