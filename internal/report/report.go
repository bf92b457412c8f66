// Package report composes the layout and rollup engines into the single
// shared computation both presentation surfaces consume. It is pure and
// re-entrant: no state survives between calls, and identical inputs always
// produce identical outputs.
package report

import (
	"github.com/piwi3910/BeamCut/internal/layout"
	"github.com/piwi3910/BeamCut/internal/model"
	"github.com/piwi3910/BeamCut/internal/rollup"
)

// ProfileReport pairs a profile's source data with its computed layouts,
// one per cutting pattern, in pattern order.
type ProfileReport struct {
	Profile  model.ProfileNesting
	Patterns []layout.Pattern
}

// Report is everything a presentation surface needs to render: bar
// layouts, the numeric rollup, the unfulfillable-parts table, and any
// invariant warnings found in the source data.
type Report struct {
	Source     model.NestingReport
	Profiles   []ProfileReport
	Rollup     rollup.Table
	ErrorParts []rollup.ErrorPart
	Warnings   []string
}

// Config carries the settings the report computation needs: boundary
// classification and the stock lengths assumed when a report carries none.
type Config struct {
	Layout              layout.Config
	DefaultStockLengths []float64
}

// DefaultConfig returns the report defaults.
func DefaultConfig() Config {
	return Config{Layout: layout.DefaultConfig()}
}

// ConfigFromApp builds a report Config from saved application preferences.
func ConfigFromApp(app model.AppConfig) Config {
	return Config{
		Layout:              layout.FromAppConfig(app),
		DefaultStockLengths: app.DefaultStockLengths,
	}
}

// Build computes the full report model from optimizer output and BOM
// weights. Weights may be nil; tonnage figures then render as not
// applicable rather than zero.
func Build(src model.NestingReport, weights model.ProfileWeights, cfg Config) Report {
	rep := Report{
		Source:     src,
		Rollup:     rollup.BuildTable(src, weights),
		ErrorParts: rollup.BuildErrorParts(src, src.LongestStockMm(cfg.DefaultStockLengths)),
		Warnings:   src.Validate(),
	}

	rep.Profiles = make([]ProfileReport, 0, len(src.Profiles))
	for _, profile := range src.Profiles {
		pr := ProfileReport{Profile: profile}
		pr.Patterns = make([]layout.Pattern, 0, len(profile.CuttingPatterns))
		for _, pattern := range profile.CuttingPatterns {
			pr.Patterns = append(pr.Patterns, layout.Build(pattern, cfg.Layout))
		}
		rep.Profiles = append(rep.Profiles, pr)
	}
	return rep
}
