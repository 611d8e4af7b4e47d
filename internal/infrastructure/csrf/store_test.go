package csrf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
)

func TestIssueAndValidate(t *testing.T) {
	store := NewMemoryStore(time.Minute, logging.NewDiscardLogger())

	token, err := store.Issue("session-a")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, store.Validate("session-a", token))
	assert.False(t, store.Validate("session-a", "forged"))
	assert.False(t, store.Validate("session-b", token))
	assert.False(t, store.Validate("", token))
	assert.False(t, store.Validate("session-a", ""))
}

func TestReissueReplacesToken(t *testing.T) {
	store := NewMemoryStore(time.Minute, logging.NewDiscardLogger())

	first, err := store.Issue("session-a")
	require.NoError(t, err)
	second, err := store.Issue("session-a")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.False(t, store.Validate("session-a", first))
	assert.True(t, store.Validate("session-a", second))
}

func TestExpiredTokenFailsClosed(t *testing.T) {
	store := NewMemoryStore(time.Millisecond, logging.NewDiscardLogger())

	token, err := store.Issue("session-a")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.False(t, store.Validate("session-a", token))

	// expired entry was dropped lazily
	assert.Equal(t, 0, store.Len())

	// a fresh token works again
	token, err = store.Issue("session-a")
	require.NoError(t, err)
	assert.True(t, store.Validate("session-a", token))
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	store := NewMemoryStore(time.Millisecond, logging.NewDiscardLogger())
	_, err := store.Issue("stale")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	store.ttl = time.Minute
	fresh, err := store.Issue("fresh")
	require.NoError(t, err)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
	assert.True(t, store.Validate("fresh", fresh))
}

func TestRevoke(t *testing.T) {
	store := NewMemoryStore(time.Minute, logging.NewDiscardLogger())

	token, err := store.Issue("session-a")
	require.NoError(t, err)

	store.Revoke("session-a")
	assert.False(t, store.Validate("session-a", token))
}
