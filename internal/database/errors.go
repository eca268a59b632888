package database

import "errors"

var (
	// ErrDuplicateIdentity is returned by Enroll when the national id is
	// already registered.
	ErrDuplicateIdentity = errors.New("national id already registered")

	// ErrStoreUnavailable wraps persistence failures that are fatal to the
	// current request. Callers must treat it as a hard failure and never
	// retry the vote path on it.
	ErrStoreUnavailable = errors.New("store unavailable")
)
