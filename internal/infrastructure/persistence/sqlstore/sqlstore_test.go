package sqlstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence/database"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New(&database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "metrics.db"),
	})
	require.NoError(t, err)

	store, err := Open(db, logging.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedOnEmptyDatabase(t *testing.T) {
	store := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)
	assert.Len(t, followers, 4)

	overview, err := store.Overview()
	require.NoError(t, err)
	assert.Len(t, overview, 8)

	series, err := store.Analytics(metrics.RangeWeek)
	require.NoError(t, err)
	assert.Len(t, series.Labels, 7)
}

func TestPatchFollowerRow(t *testing.T) {
	store := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)
	id := followers[0].ID

	patch, err := metrics.Patch{"count": 5555.0}.Normalize(metrics.CollectionFollowers)
	require.NoError(t, err)

	updated, err := store.PatchFollower(id, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(5555), updated.Count)

	total, err := store.TotalFollowers()
	require.NoError(t, err)

	var sum int64
	reread, err := store.Followers()
	require.NoError(t, err)
	for _, f := range reread {
		sum += f.Count
	}
	assert.Equal(t, sum, total)
}

func TestPatchUnknownRowIsNotFound(t *testing.T) {
	store := openTestStore(t)

	patch, err := metrics.Patch{"count": 1.0}.Normalize(metrics.CollectionFollowers)
	require.NoError(t, err)

	_, err = store.PatchFollower("no-such-row", patch)
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}
