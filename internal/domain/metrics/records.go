// Package metrics defines the dashboard's core record types.
package metrics

import "fmt"

// Collection identifies one of the store's record collections.
type Collection string

const (
	CollectionFollowers Collection = "followers"
	CollectionOverview  Collection = "overview"
)

// Brand identifies a social platform.
type Brand string

const (
	BrandFacebook  Brand = "facebook"
	BrandInstagram Brand = "instagram"
	BrandTwitter   Brand = "twitter"
	BrandYouTube   Brand = "youtube"
	BrandGitHub    Brand = "github"
)

// DeltaDirection indicates which way a metric moved.
type DeltaDirection string

const (
	DeltaUp   DeltaDirection = "up"
	DeltaDown DeltaDirection = "down"
)

// FollowerRecord is a per-platform follower count card.
type FollowerRecord struct {
	ID             string         `json:"id"`
	Brand          Brand          `json:"brand"`
	Handle         string         `json:"handle"`
	Count          int64          `json:"count"`
	DeltaDirection DeltaDirection `json:"deltaDirection"`
	DeltaValue     int64          `json:"deltaValue"`
}

// OverviewRecord is a per-platform engagement metric card.
type OverviewRecord struct {
	ID             string         `json:"id"`
	Brand          Brand          `json:"brand"`
	Metric         string         `json:"metric"`
	Value          int64          `json:"value"`
	DeltaDirection DeltaDirection `json:"deltaDirection"`
	DeltaPercent   float64        `json:"deltaPercent"`
}

// ValidBrand reports whether b is one of the supported platforms.
func ValidBrand(b Brand) bool {
	switch b {
	case BrandFacebook, BrandInstagram, BrandTwitter, BrandYouTube, BrandGitHub:
		return true
	}
	return false
}

// ValidDirection reports whether d is a supported delta direction.
func ValidDirection(d DeltaDirection) bool {
	return d == DeltaUp || d == DeltaDown
}

// ValidCollection reports whether c names a known collection.
func ValidCollection(c Collection) bool {
	return c == CollectionFollowers || c == CollectionOverview
}

// Validate checks record invariants after a merge.
func (f *FollowerRecord) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("follower record missing id")
	}
	if !ValidBrand(f.Brand) {
		return fmt.Errorf("unknown brand %q", f.Brand)
	}
	if f.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", f.Count)
	}
	if !ValidDirection(f.DeltaDirection) {
		return fmt.Errorf("unknown delta direction %q", f.DeltaDirection)
	}
	return nil
}

// Validate checks record invariants after a merge.
func (o *OverviewRecord) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("overview record missing id")
	}
	if !ValidBrand(o.Brand) {
		return fmt.Errorf("unknown brand %q", o.Brand)
	}
	if o.Value < 0 {
		return fmt.Errorf("value must be non-negative, got %d", o.Value)
	}
	if !ValidDirection(o.DeltaDirection) {
		return fmt.Errorf("unknown delta direction %q", o.DeltaDirection)
	}
	return nil
}
