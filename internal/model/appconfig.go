package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default stock lengths assumed when a report carries no settings
	DefaultStockLengths []float64 `json:"default_stock_lengths"`

	// Render divergent adjacent miters as two independent cut marks
	// instead of one shared line. Off by default: the shop cuts one line
	// and re-bevels the shorter side.
	SplitDivergentBoundaries bool `json:"split_divergent_boundaries"`

	// Miter deviation match tolerance in degrees for shared-cut detection
	MiterMatchToleranceDeg float64 `json:"miter_match_tolerance_deg"`

	// Application preferences
	RecentReports []string `json:"recent_reports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultStockLengths:      []float64{6000, 12000},
		SplitDivergentBoundaries: false,
		MiterMatchToleranceDeg:   2.0,
		RecentReports:            []string{},
	}
}
