package metrics

// AnalyticsRange selects a historical window for the analytics time series.
type AnalyticsRange string

const (
	RangeWeek      AnalyticsRange = "week"
	RangeMonth     AnalyticsRange = "month"
	RangeYear      AnalyticsRange = "year"
	RangeInception AnalyticsRange = "inception"
)

// ValidRanges lists the accepted analytics ranges in their canonical order.
// The slice is surfaced verbatim in 400 responses.
var ValidRanges = []AnalyticsRange{RangeWeek, RangeMonth, RangeYear, RangeInception}

// ValidRange reports whether r is one of the supported ranges.
func ValidRange(r AnalyticsRange) bool {
	for _, valid := range ValidRanges {
		if r == valid {
			return true
		}
	}
	return false
}

// AnalyticsSeries is the per-range time-series payload rendered by the
// dashboard's chart view: one label per data point and one series per brand.
type AnalyticsSeries struct {
	Labels    []string  `json:"labels"`
	Facebook  []float64 `json:"facebook"`
	Instagram []float64 `json:"instagram"`
	Twitter   []float64 `json:"twitter"`
	YouTube   []float64 `json:"youtube"`
}
