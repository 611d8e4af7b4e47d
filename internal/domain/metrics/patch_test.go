package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRejectsImmutableID(t *testing.T) {
	_, err := Patch{"id": "somebody-else"}.Normalize(CollectionFollowers)
	require.ErrorIs(t, err, ErrInvalidPatch)
	assert.Contains(t, err.Error(), "immutable")
}

func TestNormalizeRejectsUnknownField(t *testing.T) {
	_, err := Patch{"sparkle": true}.Normalize(CollectionFollowers)
	require.ErrorIs(t, err, ErrInvalidPatch)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestNormalizeRejectsWrongTypes(t *testing.T) {
	cases := map[string]Patch{
		"string count":      {"count": "1987"},
		"fractional count":  {"count": 19.87},
		"numeric handle":    {"handle": 42.0},
		"bad direction":     {"deltaDirection": "sideways"},
		"non-string brand":  {"brand": 7.0},
		"unsupported brand": {"brand": "myspace"},
	}
	for name, patch := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := patch.Normalize(CollectionFollowers)
			assert.ErrorIs(t, err, ErrInvalidPatch)
		})
	}
}

func TestNormalizeAcceptsCountAliasForOverviewValue(t *testing.T) {
	normalized, err := Patch{"count": 100.0}.Normalize(CollectionOverview)
	require.NoError(t, err)

	_, hasCount := normalized["count"]
	assert.False(t, hasCount)
	assert.Equal(t, int64(100), normalized["value"])
}

func TestApplyToFollowerMergesOnlyPresentFields(t *testing.T) {
	rec := FollowerRecord{
		ID:             "youtube-main",
		Brand:          BrandYouTube,
		Handle:         "@nathanf",
		Count:          8239,
		DeltaDirection: DeltaDown,
		DeltaValue:     144,
	}

	patch, err := Patch{"count": 8300.0, "deltaDirection": "up"}.Normalize(CollectionFollowers)
	require.NoError(t, err)

	merged, err := patch.ApplyToFollower(rec)
	require.NoError(t, err)

	assert.Equal(t, int64(8300), merged.Count)
	assert.Equal(t, DeltaUp, merged.DeltaDirection)
	// untouched fields survive
	assert.Equal(t, "@nathanf", merged.Handle)
	assert.Equal(t, int64(144), merged.DeltaValue)
	assert.Equal(t, "youtube-main", merged.ID)
}

func TestApplyToFollowerRejectsNegativeCount(t *testing.T) {
	rec := FollowerRecord{
		ID: "x", Brand: BrandTwitter, Handle: "@x",
		Count: 10, DeltaDirection: DeltaUp, DeltaValue: 1,
	}

	patch, err := Patch{"count": -5.0}.Normalize(CollectionFollowers)
	require.NoError(t, err)

	_, err = patch.ApplyToFollower(rec)
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestApplyToOverviewMergesValueAndPercent(t *testing.T) {
	rec := OverviewRecord{
		ID: "fb-page-views", Brand: BrandFacebook, Metric: "Page Views",
		Value: 87, DeltaDirection: DeltaUp, DeltaPercent: 3,
	}

	patch, err := Patch{"value": 90.0, "deltaPercent": 3.4}.Normalize(CollectionOverview)
	require.NoError(t, err)

	merged, err := patch.ApplyToOverview(rec)
	require.NoError(t, err)

	assert.Equal(t, int64(90), merged.Value)
	assert.InDelta(t, 3.4, merged.DeltaPercent, 0.0001)
	assert.Equal(t, "Page Views", merged.Metric)
}
