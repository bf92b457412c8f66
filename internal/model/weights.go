package model

// ProfileWeight carries the bill-of-materials totals for one profile,
// used to derive weight-per-meter for tonnage rollups.
type ProfileWeight struct {
	ProfileName   string  `json:"profile_name"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	TotalLengthMm float64 `json:"total_length_mm"`
}

// ProfileWeights maps profile names to their BOM totals.
type ProfileWeights map[string]ProfileWeight

// WeightPerMeter returns the kg/m figure for a profile, guarded to 0 when
// the profile is unknown or its total length is zero. It never produces
// NaN or Infinity.
func (w ProfileWeights) WeightPerMeter(profileName string) float64 {
	pw, ok := w[profileName]
	if !ok {
		return 0
	}
	if pw.TotalLengthMm <= 0 || pw.TotalWeightKg <= 0 {
		return 0
	}
	return pw.TotalWeightKg / (pw.TotalLengthMm / 1000.0)
}
