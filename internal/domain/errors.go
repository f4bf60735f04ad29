package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrInvalidEnvelope      = errors.New("invalid event envelope")
	ErrUnsupportedEventType = errors.New("unsupported event type")
)

// FieldErrors maps an input field to the reason it was rejected.
// errors.Is(err, ErrInvalidInput) holds for any FieldErrors value.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+f[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error { return ErrInvalidInput }
