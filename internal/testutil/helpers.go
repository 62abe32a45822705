package testutil

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/apperrors"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/service"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/store"
)

// DefaultPreviewRows is the preview bound used by test services.
const DefaultPreviewRows = 20

// NewTestRunService creates a RunService over a fresh in-memory store with
// logging disabled.
func NewTestRunService(t *testing.T) *service.RunService {
	t.Helper()

	return service.NewRunService(
		store.NewMemoryStore(),
		DefaultPreviewRows,
		zerolog.New(nil).Level(zerolog.Disabled),
	)
}

// NewTestRunServiceWithStore creates a RunService over the given store, used
// by tests that need to inspect or break the artifact sink.
func NewTestRunServiceWithStore(t *testing.T, artifacts store.ArtifactStore) *service.RunService {
	t.Helper()

	return service.NewRunService(
		artifacts,
		DefaultPreviewRows,
		zerolog.New(nil).Level(zerolog.Disabled),
	)
}

// NewTestSystemService creates a SystemService over a fresh in-memory store.
func NewTestSystemService(t *testing.T) *service.SystemService {
	t.Helper()

	return service.NewSystemService(store.NewMemoryStore())
}

// BrokenArtifactStore is an ArtifactStore whose writes always fail with Err,
// used to exercise artifact-storage failure handling. It never holds data.
type BrokenArtifactStore struct {
	Err error
}

func (s *BrokenArtifactStore) Put(key string, data []byte) error {
	return s.Err
}

func (s *BrokenArtifactStore) Get(key string) ([]byte, error) {
	return nil, apperrors.ErrArtifactNotFound
}

func (s *BrokenArtifactStore) Delete(key string) error {
	return nil
}

func (s *BrokenArtifactStore) Keys() ([]string, error) {
	return nil, nil
}

func (s *BrokenArtifactStore) DeleteOlderThan(cutoff time.Time) (int, error) {
	return 0, nil
}
