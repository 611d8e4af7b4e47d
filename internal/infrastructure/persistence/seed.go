package persistence

import "github.com/socialpulse/socialpulse-go/internal/domain/metrics"

// SeedDocument returns the initial dashboard dataset used when the store is
// empty on first boot.
func SeedDocument() *Document {
	return &Document{
		Followers: []metrics.FollowerRecord{
			{ID: "fb", Brand: metrics.BrandFacebook, Handle: "@nathanf", Count: 1987, DeltaDirection: metrics.DeltaUp, DeltaValue: 12},
			{ID: "tw", Brand: metrics.BrandTwitter, Handle: "@nathanf", Count: 1044, DeltaDirection: metrics.DeltaUp, DeltaValue: 99},
			{ID: "ig", Brand: metrics.BrandInstagram, Handle: "@realnathanf", Count: 11000, DeltaDirection: metrics.DeltaUp, DeltaValue: 1099},
			{ID: "yt", Brand: metrics.BrandYouTube, Handle: "Nathan F.", Count: 8239, DeltaDirection: metrics.DeltaDown, DeltaValue: 144},
		},
		Overview: []metrics.OverviewRecord{
			{ID: "fb-page-views", Brand: metrics.BrandFacebook, Metric: "Page Views", Value: 87, DeltaDirection: metrics.DeltaUp, DeltaPercent: 3},
			{ID: "fb-likes", Brand: metrics.BrandFacebook, Metric: "Likes", Value: 52, DeltaDirection: metrics.DeltaDown, DeltaPercent: 2},
			{ID: "ig-likes", Brand: metrics.BrandInstagram, Metric: "Likes", Value: 5462, DeltaDirection: metrics.DeltaUp, DeltaPercent: 2257},
			{ID: "ig-profile-views", Brand: metrics.BrandInstagram, Metric: "Profile Views", Value: 52000, DeltaDirection: metrics.DeltaUp, DeltaPercent: 1375},
			{ID: "tw-retweets", Brand: metrics.BrandTwitter, Metric: "Retweets", Value: 117, DeltaDirection: metrics.DeltaUp, DeltaPercent: 303},
			{ID: "tw-likes", Brand: metrics.BrandTwitter, Metric: "Likes", Value: 507, DeltaDirection: metrics.DeltaUp, DeltaPercent: 553},
			{ID: "yt-likes", Brand: metrics.BrandYouTube, Metric: "Likes", Value: 107, DeltaDirection: metrics.DeltaDown, DeltaPercent: 19},
			{ID: "yt-total-views", Brand: metrics.BrandYouTube, Metric: "Total Views", Value: 1407, DeltaDirection: metrics.DeltaDown, DeltaPercent: 12},
		},
		Analytics: map[metrics.AnalyticsRange]*metrics.AnalyticsSeries{
			metrics.RangeWeek: {
				Labels:    []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
				Facebook:  []float64{1975, 1977, 1980, 1979, 1982, 1984, 1987},
				Instagram: []float64{9901, 10050, 10222, 10478, 10701, 10904, 11000},
				Twitter:   []float64{945, 962, 980, 1001, 1015, 1032, 1044},
				YouTube:   []float64{8383, 8360, 8344, 8321, 8290, 8261, 8239},
			},
		},
	}
}
