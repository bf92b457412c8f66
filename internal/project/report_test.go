package project

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleReportJSON = `{
  "filename": "hall-42.ifc",
  "profiles": [
    {
      "profile_name": "IPE200",
      "total_parts": 2,
      "total_length": 5500,
      "stock_lengths_used": {"6000.0": 1},
      "cutting_patterns": [
        {
          "stock_length": 6000,
          "parts": [
            {
              "part": {"product_id": 101, "profile_name": "IPE200", "length": 3000, "reference": "B-1"},
              "cut_position": 0,
              "length": 3000,
              "slope_info": {"start_angle": 90, "end_angle": 95.0, "start_has_slope": false, "end_has_slope": true, "has_slope": true}
            },
            {
              "part": {"product_id": 102, "profile_name": "IPE200", "length": 2500, "reference": "B-2"},
              "cut_position": 3000,
              "length": 2500,
              "slope_info": {"start_angle": "96", "end_angle": null, "start_has_slope": true, "end_has_slope": false, "has_slope": true}
            }
          ],
          "waste": 500,
          "waste_percentage": 8.33
        }
      ],
      "total_waste": 500,
      "total_waste_percentage": 8.33,
      "rejected_parts": []
    }
  ],
  "summary": {
    "total_profiles": 1,
    "total_parts": 2,
    "total_stock_bars": 1,
    "total_waste": 500,
    "average_waste_percentage": 8.33
  },
  "settings": {"stock_lengths": [6000, 12000]}
}`

const sampleWeightsJSON = `[
  {"profile_name": "IPE200", "total_weight_kg": 123.2, "total_length_mm": 5500},
  {"profile_name": "HEA140", "total_weight_kg": 49.4, "total_length_mm": 2000}
]`

func TestLoadNestingReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(sampleReportJSON), 0644); err != nil {
		t.Fatal(err)
	}

	rep, err := LoadNestingReport(path)
	if err != nil {
		t.Fatalf("LoadNestingReport failed: %v", err)
	}

	if rep.Filename != "hall-42.ifc" {
		t.Errorf("expected filename hall-42.ifc, got %s", rep.Filename)
	}
	if len(rep.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(rep.Profiles))
	}
	if rep.Profiles[0].ProfileName != "IPE200" {
		t.Errorf("expected profile IPE200, got %s", rep.Profiles[0].ProfileName)
	}
	if len(rep.Profiles[0].CuttingPatterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(rep.Profiles[0].CuttingPatterns))
	}
	if rep.Profiles[0].CuttingPatterns[0].ID == "" {
		t.Error("expected pattern ID to be assigned on load")
	}
	if got := rep.Summary.TotalStockBars; got != 1 {
		t.Errorf("expected 1 stock bar in summary, got %d", got)
	}
}

func TestLoadNestingReportMissingFile(t *testing.T) {
	_, err := LoadNestingReport(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadNestingReportInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadNestingReport(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadProfileWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	if err := os.WriteFile(path, []byte(sampleWeightsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	weights, err := LoadProfileWeights(path)
	if err != nil {
		t.Fatalf("LoadProfileWeights failed: %v", err)
	}

	if len(weights) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(weights))
	}
	ipe, ok := weights["IPE200"]
	if !ok {
		t.Fatal("expected IPE200 entry")
	}
	if ipe.TotalWeightKg != 123.2 {
		t.Errorf("expected 123.2 kg, got %f", ipe.TotalWeightKg)
	}
	if wpm := weights.WeightPerMeter("IPE200"); wpm < 22.3 || wpm > 22.5 {
		t.Errorf("expected weight per meter near 22.4, got %f", wpm)
	}
}

func TestLoadProfileWeightsEmptyPath(t *testing.T) {
	weights, err := LoadProfileWeights("")
	if err != nil {
		t.Fatalf("expected no error for empty path, got: %v", err)
	}
	if weights == nil {
		t.Fatal("expected non-nil empty map")
	}
	if len(weights) != 0 {
		t.Errorf("expected empty map, got %d entries", len(weights))
	}
}

func TestLoadProfileWeightsMissingFile(t *testing.T) {
	_, err := LoadProfileWeights(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
