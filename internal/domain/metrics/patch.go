package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPatch marks a patch rejected by the collection schema or a
// record invariant. Callers use it to tell validation failures apart from
// store faults while persisting an accepted patch.
var ErrInvalidPatch = errors.New("invalid patch")

func invalidPatchf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPatch}, args...)...)
}

// Patch is a partial record update parsed from a request body. Only the
// fields present in the map are applied; everything else is left untouched.
type Patch map[string]any

// field type tags for patch validation
type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindNumber
	kindBrand
	kindDirection
)

var followerFields = map[string]fieldKind{
	"brand":          kindBrand,
	"handle":         kindString,
	"count":          kindInt,
	"deltaDirection": kindDirection,
	"deltaValue":     kindInt,
}

var overviewFields = map[string]fieldKind{
	"brand":          kindBrand,
	"metric":         kindString,
	"value":          kindInt,
	"deltaDirection": kindDirection,
	"deltaPercent":   kindNumber,
}

// Normalize validates a patch against the collection's schema and rewrites
// legacy aliases. Unknown fields and wrong-typed values are rejected; "id"
// is immutable and rejected outright.
func (p Patch) Normalize(collection Collection) (Patch, error) {
	fields := followerFields
	if collection == CollectionOverview {
		fields = overviewFields
	}

	out := make(Patch, len(p))
	for key, value := range p {
		if key == "id" {
			return nil, invalidPatchf("field %q is immutable", key)
		}
		// The overview collection historically used "count" for "value".
		if collection == CollectionOverview && key == "count" {
			key = "value"
		}

		kind, known := fields[key]
		if !known {
			return nil, invalidPatchf("unknown field %q", key)
		}

		checked, err := coerce(key, kind, value)
		if err != nil {
			return nil, err
		}
		out[key] = checked
	}
	return out, nil
}

func coerce(key string, kind fieldKind, value any) (any, error) {
	switch kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return nil, invalidPatchf("field %q must be a string", key)
		}
		return s, nil
	case kindBrand:
		s, ok := value.(string)
		if !ok || !ValidBrand(Brand(s)) {
			return nil, invalidPatchf("field %q must be a supported brand", key)
		}
		return s, nil
	case kindDirection:
		s, ok := value.(string)
		if !ok || !ValidDirection(DeltaDirection(s)) {
			return nil, invalidPatchf("field %q must be \"up\" or \"down\"", key)
		}
		return s, nil
	case kindInt:
		n, err := asNumber(value)
		if err != nil {
			return nil, invalidPatchf("field %q must be an integer", key)
		}
		if n != math.Trunc(n) {
			return nil, invalidPatchf("field %q must be an integer", key)
		}
		return int64(n), nil
	case kindNumber:
		n, err := asNumber(value)
		if err != nil {
			return nil, invalidPatchf("field %q must be a number", key)
		}
		return n, nil
	}
	return nil, invalidPatchf("field %q has unsupported type", key)
}

func asNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("not a number")
}

// ApplyToFollower merges a normalized patch onto a copy of the record.
func (p Patch) ApplyToFollower(rec FollowerRecord) (FollowerRecord, error) {
	for key, value := range p {
		switch key {
		case "brand":
			rec.Brand = Brand(value.(string))
		case "handle":
			rec.Handle = value.(string)
		case "count":
			rec.Count = value.(int64)
		case "deltaDirection":
			rec.DeltaDirection = DeltaDirection(value.(string))
		case "deltaValue":
			rec.DeltaValue = value.(int64)
		}
	}
	if err := rec.Validate(); err != nil {
		return FollowerRecord{}, invalidPatchf("%v", err)
	}
	return rec, nil
}

// ApplyToOverview merges a normalized patch onto a copy of the record.
func (p Patch) ApplyToOverview(rec OverviewRecord) (OverviewRecord, error) {
	for key, value := range p {
		switch key {
		case "brand":
			rec.Brand = Brand(value.(string))
		case "metric":
			rec.Metric = value.(string)
		case "value":
			rec.Value = value.(int64)
		case "deltaDirection":
			rec.DeltaDirection = DeltaDirection(value.(string))
		case "deltaPercent":
			rec.DeltaPercent = value.(float64)
		}
	}
	if err := rec.Validate(); err != nil {
		return OverviewRecord{}, invalidPatchf("%v", err)
	}
	return rec, nil
}
