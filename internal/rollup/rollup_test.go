package rollup

import (
	"testing"

	"github.com/piwi3910/BeamCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightSeg(length float64) model.CutSegment {
	return model.CutSegment{LengthMm: length}
}

// buildIPE200Report reproduces the reference scenario: one profile, stock
// 6000mm, pattern A [3000, 2500] waste 500, pattern B [4000] waste 2000.
func buildIPE200Report() model.NestingReport {
	return model.NestingReport{
		Filename: "frame.ifc",
		Profiles: []model.ProfileNesting{
			{
				ProfileName:   "IPE200",
				TotalParts:    3,
				TotalLengthMm: 9500,
				StockLengthsUsed: map[string]int{
					"6000.0": 2,
				},
				CuttingPatterns: []model.CuttingPattern{
					{
						StockLengthMm:   6000,
						Parts:           []model.CutSegment{straightSeg(3000), straightSeg(2500)},
						WasteMm:         500,
						WastePercentage: 8.33,
					},
					{
						StockLengthMm:   6000,
						Parts:           []model.CutSegment{straightSeg(4000)},
						WasteMm:         2000,
						WastePercentage: 33.33,
					},
				},
				TotalWasteMm:         2500,
				TotalWastePercentage: 20.83,
			},
		},
		Summary: model.ReportSummary{
			TotalProfiles:          1,
			TotalParts:             3,
			TotalStockBars:         2,
			TotalWasteMm:           2500,
			AverageWastePercentage: 20.833, // 2500 / 12000 of stock, length-weighted
		},
		Settings: model.ReportSettings{StockLengths: []float64{6000, 12000}},
	}
}

func ipe200Weights() model.ProfileWeights {
	// 22.4 kg/m beam: 9.5m of parts weighing 212.8 kg
	return model.ProfileWeights{
		"IPE200": {ProfileName: "IPE200", TotalWeightKg: 212.8, TotalLengthMm: 9500},
	}
}

func TestBuildTableReferenceScenario(t *testing.T) {
	table := BuildTable(buildIPE200Report(), ipe200Weights())

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]

	assert.Equal(t, "IPE200", row.ProfileName)
	assert.Equal(t, 6000.0, row.StockLengthMm)
	assert.Equal(t, 2, row.BarCount)
	assert.Equal(t, 1, row.TotalCuts, "(2-1)+(1-1) internal cuts")
	assert.InDelta(t, 2500.0, row.WasteMm, 0.001)
	assert.InDelta(t, 2.5, row.WasteM, 0.001)

	// 22.4 kg/m * 6m * 2 bars / 1000 = 0.2688 t
	require.True(t, row.HasTonnage)
	assert.InDelta(t, 22.4, row.WeightPerMeter, 0.001)
	assert.InDelta(t, 0.2688, row.Tonnage, 0.0001)

	// 2.5m of waste at 22.4 kg/m = 56 kg = 0.056 t
	assert.InDelta(t, 0.056, row.WasteTonnage, 0.0001)

	// Mean of the two pattern percentages
	assert.InDelta(t, (8.33+33.33)/2, row.WastePct, 0.001)
}

func TestBuildTableNoWeights(t *testing.T) {
	table := BuildTable(buildIPE200Report(), nil)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.False(t, row.HasTonnage, "tonnage is N/A without BOM data")
	assert.Equal(t, 0.0, row.Tonnage)
	assert.Equal(t, 0.0, row.WasteTonnage)
	// Cut and waste figures do not depend on weights
	assert.Equal(t, 1, row.TotalCuts)
	assert.InDelta(t, 2500.0, row.WasteMm, 0.001)
}

func TestWeightPerMeterZeroLengthGuard(t *testing.T) {
	weights := model.ProfileWeights{
		"IPE200": {ProfileName: "IPE200", TotalWeightKg: 100, TotalLengthMm: 0},
	}

	table := BuildTable(buildIPE200Report(), weights)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, 0.0, row.WeightPerMeter)
	assert.False(t, row.HasTonnage)
	assert.Equal(t, 0.0, row.Tonnage, "never NaN or Infinity")
}

func TestBuildTableSkipsZeroBarCounts(t *testing.T) {
	rep := buildIPE200Report()
	rep.Profiles[0].StockLengthsUsed["12000.0"] = 0

	table := BuildTable(rep, ipe200Weights())
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 6000.0, table.Rows[0].StockLengthMm)
}

func TestBuildTableWastePctFallback(t *testing.T) {
	// A stock length with a bar count but no matching patterns falls back
	// to the profile's overall percentage.
	rep := buildIPE200Report()
	rep.Profiles[0].StockLengthsUsed = map[string]int{"9000.0": 1}

	table := BuildTable(rep, ipe200Weights())
	require.Len(t, table.Rows, 1)
	assert.InDelta(t, 20.83, table.Rows[0].WastePct, 0.001)
	assert.Equal(t, 0, table.Rows[0].TotalCuts)
}

func TestBuildTableGrandTotals(t *testing.T) {
	rep := buildIPE200Report()
	rep.Profiles = append(rep.Profiles, model.ProfileNesting{
		ProfileName:      "HEA140",
		StockLengthsUsed: map[string]int{"12000.0": 1},
		CuttingPatterns: []model.CuttingPattern{
			{
				StockLengthMm:   12000,
				Parts:           []model.CutSegment{straightSeg(5000), straightSeg(4000), straightSeg(2000)},
				WasteMm:         1000,
				WastePercentage: 8.33,
			},
		},
		TotalWastePercentage: 8.33,
	})

	weights := ipe200Weights()
	weights["HEA140"] = model.ProfileWeight{ProfileName: "HEA140", TotalWeightKg: 271.7, TotalLengthMm: 11000}

	table := BuildTable(rep, weights)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 3, table.Totals.BarCount)
	assert.Equal(t, 1+2, table.Totals.TotalCuts)
	assert.InDelta(t, 3500.0, table.Totals.WasteMm, 0.001)
	assert.InDelta(t, 3.5, table.Totals.WasteM, 0.001)
	assert.InDelta(t, table.Rows[0].Tonnage+table.Rows[1].Tonnage, table.Totals.Tonnage, 1e-9)
}

func TestAverageWastePercentagesBothExposed(t *testing.T) {
	table := BuildTable(buildIPE200Report(), ipe200Weights())

	// The optimizer's length-weighted figure is reproduced as-is.
	assert.InDelta(t, 20.833, table.UpstreamAvgWastePct, 0.001)
	// The row mean is computed locally and may legitimately differ.
	assert.InDelta(t, (8.33+33.33)/2, table.RowMeanWastePct, 0.001)
	assert.NotEqual(t, table.UpstreamAvgWastePct, table.RowMeanWastePct)
}

func TestBuildTableEmptyProfile(t *testing.T) {
	rep := model.NestingReport{
		Profiles: []model.ProfileNesting{{ProfileName: "UPN100"}},
	}
	table := BuildTable(rep, nil)
	assert.Empty(t, table.Rows, "a profile with no patterns renders as an empty row set")
	assert.Equal(t, 0.0, table.RowMeanWastePct)
}

func TestBuildErrorPartsGrouping(t *testing.T) {
	rep := model.NestingReport{
		Profiles: []model.ProfileNesting{
			{
				ProfileName: "IPE200",
				RejectedParts: []model.RejectedPart{
					{Reference: "B-101", LengthMm: 12500, StockLength: 12000},
					{Reference: "B-101", LengthMm: 12500.004, StockLength: 12000}, // same to 2dp
					{Reference: "B-102", LengthMm: 13000, StockLength: 12000},
				},
			},
			{
				ProfileName: "HEA140",
				RejectedParts: []model.RejectedPart{
					{Reference: "B-101", LengthMm: 12500, StockLength: 12000}, // other profile, own group
				},
			},
		},
	}

	parts := BuildErrorParts(rep, 12000)

	require.Len(t, parts, 3)
	assert.Equal(t, ErrorPart{ProfileName: "IPE200", Reference: "B-101", LengthMm: 12500, StockLengthMm: 12000, Quantity: 2}, parts[0])
	assert.Equal(t, ErrorPart{ProfileName: "IPE200", Reference: "B-102", LengthMm: 13000, StockLengthMm: 12000, Quantity: 1}, parts[1])
	assert.Equal(t, ErrorPart{ProfileName: "HEA140", Reference: "B-101", LengthMm: 12500, StockLengthMm: 12000, Quantity: 1}, parts[2])
}

func TestBuildErrorPartsZeroStockFallsBackToLongest(t *testing.T) {
	rep := model.NestingReport{
		Profiles: []model.ProfileNesting{
			{
				ProfileName: "IPE200",
				RejectedParts: []model.RejectedPart{
					{Reference: "B-101", LengthMm: 12500, StockLength: 0},
					{Reference: "B-102", LengthMm: 13000, StockLength: 12000},
				},
			},
		},
	}

	parts := BuildErrorParts(rep, 12000)

	require.Len(t, parts, 2)
	assert.Equal(t, 12000.0, parts[0].StockLengthMm)
	assert.Equal(t, 12000.0, parts[1].StockLengthMm)
}

func TestBuildErrorPartsReferenceFallback(t *testing.T) {
	rep := model.NestingReport{
		Profiles: []model.ProfileNesting{
			{
				ProfileName: "IPE200",
				RejectedParts: []model.RejectedPart{
					{ElementName: "Beam-7", LengthMm: 12500},
					{PartID: float64(4711), LengthMm: 12600},
					{LengthMm: 12700},
				},
			},
		},
	}

	parts := BuildErrorParts(rep, 12000)

	require.Len(t, parts, 3)
	assert.Equal(t, "Beam-7", parts[0].Reference)
	assert.Equal(t, "4711", parts[1].Reference)
	assert.Equal(t, "unknown", parts[2].Reference)
}

func TestBuildErrorPartsEmpty(t *testing.T) {
	parts := BuildErrorParts(buildIPE200Report(), 12000)
	assert.Empty(t, parts)
}
