package jsonstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := Open(path, logging.NewDiscardLogger())
	require.NoError(t, err)
	return store, path
}

func TestOpenSeedsMissingFile(t *testing.T) {
	store, path := openTestStore(t)

	_, err := os.Stat(path)
	require.NoError(t, err, "seed document should be written to disk")

	followers, err := store.Followers()
	require.NoError(t, err)
	assert.Len(t, followers, 4)

	overview, err := store.Overview()
	require.NoError(t, err)
	assert.Len(t, overview, 8)
}

func TestPatchFollowerPersistsAcrossReopen(t *testing.T) {
	store, path := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)
	id := followers[0].ID

	patch, err := metrics.Patch{"count": 2000.0}.Normalize(metrics.CollectionFollowers)
	require.NoError(t, err)

	updated, err := store.PatchFollower(id, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), updated.Count)

	reopened, err := Open(path, logging.NewDiscardLogger())
	require.NoError(t, err)

	followers, err = reopened.Followers()
	require.NoError(t, err)
	assert.Equal(t, int64(2000), followers[0].Count)
}

func TestPatchUnknownIDLeavesStateUntouched(t *testing.T) {
	store, _ := openTestStore(t)

	before, err := store.Followers()
	require.NoError(t, err)

	patch, err := metrics.Patch{"count": 999.0}.Normalize(metrics.CollectionFollowers)
	require.NoError(t, err)

	_, err = store.PatchFollower("no-such-record", patch)
	assert.ErrorIs(t, err, persistence.ErrNotFound)

	after, err := store.Followers()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPatchFlushFailureIsNotAValidationError(t *testing.T) {
	store, path := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)
	id := followers[0].ID

	// a directory in the document's place makes the rename fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	patch, err := metrics.Patch{"count": 2000.0}.Normalize(metrics.CollectionFollowers)
	require.NoError(t, err)

	_, err = store.PatchFollower(id, patch)
	require.Error(t, err)
	assert.NotErrorIs(t, err, metrics.ErrInvalidPatch)
	assert.NotErrorIs(t, err, persistence.ErrNotFound)

	// the failed flush must not leave the merge behind in memory
	followers, err = store.Followers()
	require.NoError(t, err)
	assert.NotEqual(t, int64(2000), followers[0].Count)
}

func TestTotalFollowersTracksPatches(t *testing.T) {
	store, _ := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)

	var sum int64
	for _, f := range followers {
		sum += f.Count
	}

	total, err := store.TotalFollowers()
	require.NoError(t, err)
	assert.Equal(t, sum, total)

	patch, err := metrics.Patch{"count": followers[0].Count + 100}.Normalize(metrics.CollectionFollowers)
	require.NoError(t, err)
	_, err = store.PatchFollower(followers[0].ID, patch)
	require.NoError(t, err)

	total, err = store.TotalFollowers()
	require.NoError(t, err)
	assert.Equal(t, sum+100, total)
}

func TestConcurrentPatchesToDistinctRecordsAllLand(t *testing.T) {
	store, _ := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)
	require.Len(t, followers, 4)

	var wg sync.WaitGroup
	for i, f := range followers {
		wg.Add(1)
		go func(id string, count int64) {
			defer wg.Done()
			patch, err := metrics.Patch{"count": count}.Normalize(metrics.CollectionFollowers)
			assert.NoError(t, err)
			_, err = store.PatchFollower(id, patch)
			assert.NoError(t, err)
		}(f.ID, int64(1000*(i+1)))
	}
	wg.Wait()

	after, err := store.Followers()
	require.NoError(t, err)
	for i, f := range after {
		assert.Equal(t, int64(1000*(i+1)), f.Count)
	}
}

func TestConcurrentPatchesToSameRecordSerialize(t *testing.T) {
	store, _ := openTestStore(t)

	followers, err := store.Followers()
	require.NoError(t, err)
	id := followers[0].ID

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			patch, err := metrics.Patch{
				"count":  int64(100 + n),
				"handle": fmt.Sprintf("@writer%d", n),
			}.Normalize(metrics.CollectionFollowers)
			assert.NoError(t, err)
			_, err = store.PatchFollower(id, patch)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// One of the submitted patches won wholesale: count and handle agree.
	after, err := store.Followers()
	require.NoError(t, err)
	n := after[0].Count - 100
	assert.GreaterOrEqual(t, n, int64(0))
	assert.Less(t, n, int64(writers))
	assert.Equal(t, fmt.Sprintf("@writer%d", n), after[0].Handle)
}

func TestAnalyticsSeries(t *testing.T) {
	store, _ := openTestStore(t)

	series, err := store.Analytics(metrics.RangeWeek)
	require.NoError(t, err)
	require.NotNil(t, series)
	assert.Len(t, series.Labels, 7)
	assert.Len(t, series.Facebook, 7)

	_, err = store.Analytics(metrics.RangeInception)
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}
