// Package rollup aggregates cutting patterns into per-profile,
// per-stock-length tonnage, waste and cut-count figures, plus the list of
// parts that cannot be fabricated from any available stock length.
//
// All arithmetic is guarded: missing weights, zero lengths and empty
// pattern sets degrade to zero values, never to NaN or Infinity, because
// the report must stay renderable on partial upstream data.
package rollup

import (
	"math"

	"github.com/piwi3910/BeamCut/internal/model"
)

// Row is one rollup line: a single profile cut from a single stock length.
type Row struct {
	ProfileName    string
	StockLengthMm  float64
	BarCount       int
	WeightPerMeter float64 // kg/m, 0 when the BOM has no data
	Tonnage        float64
	HasTonnage     bool // false renders as "N/A", not as 0.00
	TotalCuts      int
	WasteMm        float64
	WasteM         float64
	WasteTonnage   float64
	WastePct       float64
}

// Totals is the grand-total line across all rows.
type Totals struct {
	BarCount     int
	Tonnage      float64
	TotalCuts    int
	WasteMm      float64
	WasteM       float64
	WasteTonnage float64
}

// Table is the complete rollup with both waste-percentage averages.
//
// UpstreamAvgWastePct is the optimizer's length-weighted figure and is
// reproduced as-is. RowMeanWastePct is the unweighted mean of the row
// percentages computed here. They diverge whenever profiles carry uneven
// pattern counts, so both are exposed under separate labels.
type Table struct {
	Rows                []Row
	Totals              Totals
	UpstreamAvgWastePct float64
	RowMeanWastePct     float64
}

// BuildTable computes the rollup for every profile and stock length in the
// report. Rows follow the report's profile order; within a profile, stock
// lengths ascend. Stock lengths with a zero bar count are skipped.
func BuildTable(report model.NestingReport, weights model.ProfileWeights) Table {
	table := Table{
		UpstreamAvgWastePct: report.Summary.AverageWastePercentage,
	}

	for _, profile := range report.Profiles {
		wpm := weights.WeightPerMeter(profile.ProfileName)

		for _, usage := range profile.StockUsage() {
			if usage.Bars <= 0 {
				continue
			}
			row := buildRow(profile, usage, wpm)
			table.Rows = append(table.Rows, row)

			table.Totals.BarCount += row.BarCount
			table.Totals.Tonnage += row.Tonnage
			table.Totals.TotalCuts += row.TotalCuts
			table.Totals.WasteMm += row.WasteMm
			table.Totals.WasteM += row.WasteM
			table.Totals.WasteTonnage += row.WasteTonnage
		}
	}

	if len(table.Rows) > 0 {
		var sum float64
		for _, row := range table.Rows {
			sum += row.WastePct
		}
		table.RowMeanWastePct = sum / float64(len(table.Rows))
	}
	return table
}

func buildRow(profile model.ProfileNesting, usage model.StockUsage, wpm float64) Row {
	row := Row{
		ProfileName:    profile.ProfileName,
		StockLengthMm:  usage.LengthMm,
		BarCount:       usage.Bars,
		WeightPerMeter: wpm,
	}

	if wpm > 0 {
		row.Tonnage = wpm * (usage.LengthMm / 1000.0) * float64(usage.Bars) / 1000.0
		row.HasTonnage = true
	}

	patterns := profile.PatternsForStock(usage.LengthMm)
	for _, pattern := range patterns {
		row.TotalCuts += pattern.InternalCuts()
		row.WasteMm += pattern.WasteMm
	}
	row.WasteM = row.WasteMm / 1000.0

	if wpm > 0 && row.WasteMm > 0 {
		row.WasteTonnage = (row.WasteMm / 1000.0) * wpm / 1000.0
	}

	if len(patterns) > 0 {
		var sum float64
		for _, pattern := range patterns {
			sum += pattern.WastePercentage
		}
		row.WastePct = sum / float64(len(patterns))
	} else {
		row.WastePct = profile.TotalWastePercentage
	}
	return row
}

// ErrorPart is a grouped entry for parts whose length exceeds the largest
// usable stock. These never appear in tonnage or waste rollups; they get
// their own table so they are never silently dropped.
type ErrorPart struct {
	ProfileName   string
	Reference     string
	LengthMm      float64
	StockLengthMm float64 // the stock the part was rejected against
	Quantity      int
}

// BuildErrorParts groups every rejected part by profile, reference and
// length rounded to two decimals, aggregating quantities. Entries keep
// first-seen order, which makes repeated builds identical. A rejected part
// reported against a zero stock length is shown against longestStockMm,
// the longest bar the shop can fabricate from.
func BuildErrorParts(report model.NestingReport, longestStockMm float64) []ErrorPart {
	type key struct {
		profile   string
		reference string
		lengthMm  float64
	}

	index := make(map[key]int)
	var parts []ErrorPart

	for _, profile := range report.Profiles {
		for _, rejected := range profile.RejectedParts {
			k := key{
				profile:   profile.ProfileName,
				reference: rejected.Label(),
				lengthMm:  roundTo2(rejected.LengthMm),
			}
			if i, ok := index[k]; ok {
				parts[i].Quantity++
				continue
			}
			stock := rejected.StockLength
			if stock <= 0 {
				stock = longestStockMm
			}
			index[k] = len(parts)
			parts = append(parts, ErrorPart{
				ProfileName:   k.profile,
				Reference:     k.reference,
				LengthMm:      k.lengthMm,
				StockLengthMm: stock,
				Quantity:      1,
			})
		}
	}
	return parts
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
