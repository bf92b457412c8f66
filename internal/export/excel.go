package export

import (
	"fmt"

	"github.com/piwi3910/BeamCut/internal/report"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	sheetRollup     = "Rollup"
	sheetPatterns   = "Patterns"
	sheetErrorParts = "Error Parts"
)

// ExportExcel writes the rollup table, a per-bar pattern listing and the
// unfulfillable-parts list into an Excel workbook.
func ExportExcel(path string, rep report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRollup); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRollupSheet(f, rep, headerStyle); err != nil {
		return err
	}
	if err := writePatternsSheet(f, rep, headerStyle); err != nil {
		return err
	}
	if len(rep.ErrorParts) > 0 {
		if err := writeErrorPartsSheet(f, rep, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRollupSheet(f *excelize.File, rep report.Report, headerStyle int) error {
	headers := []string{"Profile", "Stock (mm)", "Bars", "Tonnage (t)", "Cuts", "Waste (mm)", "Waste (m)", "Waste (t)", "Waste %", "kg/m"}
	if err := writeRow(f, sheetRollup, 1, toAny(headers)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetRollup, "A1", "J1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, r := range rep.Rollup.Rows {
		var tonnage, wasteTonnage, wpm any = "N/A", "N/A", "N/A"
		if r.HasTonnage {
			tonnage = r.Tonnage
			wasteTonnage = r.WasteTonnage
			wpm = r.WeightPerMeter
		}
		values := []any{r.ProfileName, r.StockLengthMm, r.BarCount, tonnage, r.TotalCuts, r.WasteMm, r.WasteM, wasteTonnage, r.WastePct, wpm}
		if err := writeRow(f, sheetRollup, row, values); err != nil {
			return err
		}
		row++
	}

	totals := rep.Rollup.Totals
	totalValues := []any{"TOTAL", "", totals.BarCount, totals.Tonnage, totals.TotalCuts, totals.WasteMm, totals.WasteM, totals.WasteTonnage, "", ""}
	if err := writeRow(f, sheetRollup, row, totalValues); err != nil {
		return err
	}
	row += 2

	if err := writeRow(f, sheetRollup, row, []any{"Average waste (optimizer, length-weighted)", rep.Rollup.UpstreamAvgWastePct}); err != nil {
		return err
	}
	row++
	return writeRow(f, sheetRollup, row, []any{"Average waste (mean of table rows)", rep.Rollup.RowMeanWastePct})
}

func writePatternsSheet(f *excelize.File, rep report.Report, headerStyle int) error {
	if _, err := f.NewSheet(sheetPatterns); err != nil {
		return err
	}
	headers := []string{"Profile", "Bar", "Pattern ID", "Stock (mm)", "Parts", "Cuts", "Waste (mm)", "Waste %", "Part lengths (display order)"}
	if err := writeRow(f, sheetPatterns, 1, toAny(headers)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetPatterns, "A1", "I1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, pr := range rep.Profiles {
		for i, pattern := range pr.Patterns {
			src := pr.Profile.CuttingPatterns[i]
			lengths := ""
			for j, seg := range pattern.Segments {
				if j > 0 {
					lengths += ", "
				}
				lengths += fmt.Sprintf("%.0f", seg.LengthMm)
			}
			values := []any{
				pr.Profile.ProfileName, i + 1, pattern.PatternID,
				pattern.StockLengthMm, len(pattern.Segments), src.InternalCuts(),
				src.WasteMm, src.WastePercentage, lengths,
			}
			if err := writeRow(f, sheetPatterns, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeErrorPartsSheet(f *excelize.File, rep report.Report, headerStyle int) error {
	if _, err := f.NewSheet(sheetErrorParts); err != nil {
		return err
	}
	headers := []string{"Profile", "Reference", "Length (mm)", "Stock (mm)", "Quantity"}
	if err := writeRow(f, sheetErrorParts, 1, toAny(headers)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetErrorParts, "A1", "E1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, part := range rep.ErrorParts {
		values := []any{part.ProfileName, part.Reference, part.LengthMm, part.StockLengthMm, part.Quantity}
		if err := writeRow(f, sheetErrorParts, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
