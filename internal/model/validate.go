package model

import (
	"fmt"
	"math"
)

// Validate checks the report's structural invariants and returns a list of
// human-readable warnings. A report with warnings still renders; the checks
// exist to surface upstream inconsistencies, not to reject input.
func (r NestingReport) Validate() []string {
	var warnings []string

	for _, profile := range r.Profiles {
		for i, pattern := range profile.CuttingPatterns {
			partsLen := pattern.PartsLengthMm()
			diff := math.Abs(partsLen + pattern.WasteMm - pattern.StockLengthMm)
			if diff > LengthToleranceMm {
				warnings = append(warnings, fmt.Sprintf(
					"%s pattern %d: parts (%.2fmm) + waste (%.2fmm) differs from stock (%.2fmm) by %.2fmm",
					profile.ProfileName, i+1, partsLen, pattern.WasteMm, pattern.StockLengthMm, diff))
			}
			if pattern.WasteMm < -LengthToleranceMm {
				warnings = append(warnings, fmt.Sprintf(
					"%s pattern %d: negative waste (%.2fmm)",
					profile.ProfileName, i+1, pattern.WasteMm))
			}
		}

		// Bar counts in stock_lengths_used must agree with the number of
		// patterns cut from each stock length.
		for _, usage := range profile.StockUsage() {
			matched := len(profile.PatternsForStock(usage.LengthMm))
			if matched != usage.Bars {
				warnings = append(warnings, fmt.Sprintf(
					"%s: stock %.0fmm reports %d bars but %d patterns match",
					profile.ProfileName, usage.LengthMm, usage.Bars, matched))
			}
		}
	}

	return warnings
}
