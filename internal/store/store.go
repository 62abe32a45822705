// Package store provides the injected artifact sink the pipeline result is
// written to. The core pipeline never touches a destination itself; the
// caller chooses one of the implementations here.
package store

import "time"

// ArtifactStore is a destination for processed workbooks, keyed by
// run-scoped artifact keys. Implementations must be safe for concurrent use.
type ArtifactStore interface {
	// Put stores data under key, replacing any previous value.
	Put(key string, data []byte) error

	// Get returns the stored bytes, or apperrors.ErrArtifactNotFound.
	Get(key string) ([]byte, error)

	// Delete removes the key; deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists all stored keys.
	Keys() ([]string, error)

	// DeleteOlderThan removes artifacts stored before cutoff and returns
	// how many were removed. Used by the retention sweeper.
	DeleteOlderThan(cutoff time.Time) (int, error)
}
