// api/model/feature.go
package model

import "time"

// Feature is a premium capability gated behind a paid transaction.
type Feature string

const (
	FeatureAdvancedStats        Feature = "advanced_stats"
	FeatureHistoricalData       Feature = "historical_data"
	FeaturePremiumNotifications Feature = "premium_notifications"
)

// FeatureSpec is the fixed price and access window of a feature.
type FeatureSpec struct {
	Feature     Feature       `json:"feature"`
	Price       float64       `json:"price"`
	Validity    time.Duration `json:"validity"`
	GameScoped  bool          `json:"game_scoped"`
	DisplayName string        `json:"display_name"`
	Description string        `json:"description"`
}

var featureSpecs = map[Feature]FeatureSpec{
	FeatureAdvancedStats: {
		Feature:     FeatureAdvancedStats,
		Price:       0.50,
		Validity:    24 * time.Hour,
		GameScoped:  true,
		DisplayName: "Advanced Player Stats",
		Description: "Unlock detailed player statistics including passing, rushing, and defensive metrics",
	},
	FeatureHistoricalData: {
		Feature:     FeatureHistoricalData,
		Price:       1.00,
		Validity:    24 * time.Hour,
		DisplayName: "Historical Game Data",
		Description: "Access complete historical game data and advanced analytics",
	},
	FeaturePremiumNotifications: {
		Feature:     FeaturePremiumNotifications,
		Price:       2.50,
		Validity:    7 * 24 * time.Hour,
		DisplayName: "Premium Notifications",
		Description: "Receive real-time alerts for touchdowns, turnovers, and game events",
	},
}

// Spec returns the feature's pricing and validity; ok is false for unknown features.
func (f Feature) Spec() (FeatureSpec, bool) {
	spec, ok := featureSpecs[f]
	return spec, ok
}

func (f Feature) Valid() bool {
	_, ok := featureSpecs[f]
	return ok
}
