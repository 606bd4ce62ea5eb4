package slugger

import "errors"

var (
	// ErrStoreUnavailable wraps any failure reported by the Store. It is never retried.
	ErrStoreUnavailable = errors.New("slugger: store unavailable")
	// ErrTooManyAttempts is returned when MaxAttempts candidates were all taken.
	ErrTooManyAttempts = errors.New("slugger: too many slug collisions")
	// ErrEmptySlug is returned when the title (or supplied slug) normalizes to nothing.
	ErrEmptySlug = errors.New("slugger: slug is empty")
	// ErrInvalidConfig is returned by New for out-of-range settings.
	ErrInvalidConfig = errors.New("slugger: invalid config")
	// ErrNilStore is returned by New when no Store is supplied.
	ErrNilStore = errors.New("slugger: nil store")

	// ErrNotFound is returned by Store.Get for unknown identities.
	ErrNotFound = errors.New("slugger: entity not found")
	// ErrConflict is returned by Store.Put when the slug is held by another entity.
	ErrConflict = errors.New("slugger: slug already taken")
)
