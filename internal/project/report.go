// Package project handles loading optimizer reports and BOM weight files,
// and persisting application configuration.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/BeamCut/internal/model"
)

// LoadNestingReport reads an optimizer nesting report from a JSON file and
// assigns short pattern IDs for labeling.
func LoadNestingReport(path string) (model.NestingReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.NestingReport{}, fmt.Errorf("failed to read nesting report: %w", err)
	}

	var rep model.NestingReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return model.NestingReport{}, fmt.Errorf("failed to parse nesting report: %w", err)
	}

	rep.AssignPatternIDs()
	return rep, nil
}

// LoadProfileWeights reads per-profile BOM totals from a JSON file holding
// an array of entries. An empty path yields an empty map: tonnage figures
// then render as not applicable.
func LoadProfileWeights(path string) (model.ProfileWeights, error) {
	if path == "" {
		return model.ProfileWeights{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file: %w", err)
	}

	var entries []model.ProfileWeight
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse weights file: %w", err)
	}

	weights := make(model.ProfileWeights, len(entries))
	for _, entry := range entries {
		weights[entry.ProfileName] = entry
	}
	return weights, nil
}
