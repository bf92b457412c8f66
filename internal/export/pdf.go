// Package export renders nesting reports to shop-floor file formats:
// PDF bar diagrams, Excel rollup workbooks, QR-coded bar labels and DXF
// line drawings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BeamCut/internal/layout"
	"github.com/piwi3910/BeamCut/internal/report"
	"github.com/piwi3910/BeamCut/internal/rollup"
)

// segmentColor represents an RGB color for a placed segment.
type segmentColor struct {
	R, G, B int
}

// segmentColors mirrors the color scheme used by the interactive bar diagram.
var segmentColors = []segmentColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	barHeight    = 14.0
	barSpacing   = 26.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	miterSlantMm = 2.5 // horizontal offset of a slanted cut mark at full bar height
)

// ExportPDF generates a PDF document for the nesting report. Each profile
// gets one or more pages of bar diagrams, followed by a rollup summary
// page and, when present, an unfulfillable-parts section.
func ExportPDF(path string, rep report.Report) error {
	if len(rep.Profiles) == 0 {
		return fmt.Errorf("no profiles to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, pr := range rep.Profiles {
		renderProfilePages(pdf, pr)
	}

	pdf.AddPage()
	renderRollupPage(pdf, rep)

	return pdf.OutputFileAndClose(path)
}

// barsPerPage is how many bar diagrams fit under the page header.
var barsPerPage = int(math.Floor(float64(pageHeight-drawAreaTop-marginBottom) / barSpacing))

// renderProfilePages draws all cutting patterns of one profile.
func renderProfilePages(pdf *fpdf.Fpdf, pr report.ProfileReport) {
	if len(pr.Patterns) == 0 {
		// A profile with no patterns still gets a page stating so.
		pdf.AddPage()
		renderProfileHeader(pdf, pr, 1, 1)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetXY(marginLeft, drawAreaTop)
		pdf.CellFormat(100, 6, "No cutting patterns for this profile", "", 0, "L", false, 0, "")
		return
	}

	pageCount := (len(pr.Patterns) + barsPerPage - 1) / barsPerPage
	for page := 0; page < pageCount; page++ {
		pdf.AddPage()
		renderProfileHeader(pdf, pr, page+1, pageCount)

		start := page * barsPerPage
		end := start + barsPerPage
		if end > len(pr.Patterns) {
			end = len(pr.Patterns)
		}
		y := drawAreaTop
		for i := start; i < end; i++ {
			renderBar(pdf, pr.Patterns[i], i+1, y)
			y += barSpacing
		}
	}
}

func renderProfileHeader(pdf *fpdf.Fpdf, pr report.ProfileReport, page, pageCount int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Profile %s", pr.Profile.ProfileName)
	if pageCount > 1 {
		title += fmt.Sprintf(" (page %d/%d)", page, pageCount)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Bars: %d | Waste: %.0f mm (%.1f%%)",
		pr.Profile.TotalParts, len(pr.Profile.CuttingPatterns),
		pr.Profile.TotalWasteMm, pr.Profile.TotalWastePercentage)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

// renderBar draws one cutting pattern as a horizontal bar diagram with its
// cut-line marks and trailing waste region.
func renderBar(pdf *fpdf.Fpdf, pattern layout.Pattern, barNum int, y float64) {
	drawWidth := pageWidth - marginLeft - marginRight
	rm := pattern.Render(drawWidth)

	// Caption above the bar
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y-4.5)
	caption := fmt.Sprintf("Bar %d - %.0f mm stock", barNum, pattern.StockLengthMm)
	if pattern.PatternID != "" {
		caption += fmt.Sprintf(" [%s]", pattern.PatternID)
	}
	if pattern.HasWaste() {
		caption += fmt.Sprintf(" - waste %.0f mm", pattern.WasteMm)
	}
	pdf.CellFormat(drawWidth, 4, caption, "", 0, "L", false, 0, "")

	// Stock bar outline
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, y, drawWidth, barHeight, "FD")

	// Segments
	for i, item := range rm.Items {
		col := segmentColors[i%len(segmentColors)]
		sx := marginLeft + item.StartCoord
		sw := item.EndCoord - item.StartCoord

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.Rect(sx, y, sw, barHeight, "F")

		if sw > 10 {
			pdf.SetFont("Helvetica", "", segmentFontSize(sw))
			pdf.SetTextColor(0, 0, 0)
			label := item.Label
			labelW := pdf.GetStringWidth(label)
			if labelW < sw-1 {
				pdf.SetXY(sx+(sw-labelW)/2, y+barHeight/2-3.5)
				pdf.CellFormat(labelW, 3.5, label, "", 0, "C", false, 0, "")
			}
			lenLabel := fmt.Sprintf("%.0f", pattern.Segments[i].LengthMm)
			lenW := pdf.GetStringWidth(lenLabel)
			if lenW < sw-1 {
				pdf.SetXY(sx+(sw-lenW)/2, y+barHeight/2+0.5)
				pdf.CellFormat(lenW, 3.5, lenLabel, "", 0, "C", false, 0, "")
			}
		}
	}

	// Cut-line marks over the segment fills
	for _, b := range rm.Boundaries {
		drawBoundaryMark(pdf, marginLeft+b.PositionMm, y, b)
	}

	// Trailing waste region
	if rm.HasWaste {
		wx := marginLeft + rm.WasteStart
		ww := rm.WasteEnd - rm.WasteStart
		pdf.SetFillColor(255, 220, 220)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.Rect(wx, y, ww, barHeight, "FD")
		drawHatchPattern(pdf, wx, y, ww, barHeight)
	}

	// Outline again so segment fills do not cover the bar border
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, y, drawWidth, barHeight, "D")
}

// drawBoundaryMark draws the cut line for one internal boundary. Straight
// shared cuts are vertical; shared miters slant toward the owning side;
// separate boundaries get two short parallel marks.
func drawBoundaryMark(pdf *fpdf.Fpdf, x, y float64, b layout.Boundary) {
	pdf.SetDrawColor(20, 20, 20)
	pdf.SetLineWidth(0.5)

	switch b.Kind {
	case layout.SharedStraight:
		pdf.Line(x, y, x, y+barHeight)
	case layout.SharedMiter:
		slant := miterSlantMm
		if b.Owner == layout.SideRight {
			slant = -slant
		}
		pdf.Line(x-slant/2, y, x+slant/2, y+barHeight)
	case layout.Separate:
		pdf.Line(x-0.7, y, x-0.7, y+barHeight)
		pdf.Line(x+0.7, y, x+0.7, y+barHeight)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark waste.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// renderRollupPage draws the rollup table, grand totals, both
// average-waste figures and the unfulfillable-parts section.
func renderRollupPage(pdf *fpdf.Fpdf, rep report.Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Rollup Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{42, 28, 18, 28, 20, 28, 24, 24, 24}
	headers := []string{"Profile", "Stock (mm)", "Bars", "Tonnage (t)", "Cuts", "Waste (m)", "Waste (t)", "Waste %", "kg/m"}

	drawHeaderRow := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		return y + 6
	}
	y = drawHeaderRow(y)

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rep.Rollup.Rows {
		if y+6 > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = drawHeaderRow(marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		tonnage := "N/A"
		wasteTonnage := "N/A"
		wpm := "N/A"
		if row.HasTonnage {
			tonnage = fmt.Sprintf("%.3f", row.Tonnage)
			wasteTonnage = fmt.Sprintf("%.3f", row.WasteTonnage)
			wpm = fmt.Sprintf("%.2f", row.WeightPerMeter)
		}
		rowData := []string{
			row.ProfileName,
			fmt.Sprintf("%.0f", row.StockLengthMm),
			fmt.Sprintf("%d", row.BarCount),
			tonnage,
			fmt.Sprintf("%d", row.TotalCuts),
			fmt.Sprintf("%.2f", row.WasteM),
			wasteTonnage,
			fmt.Sprintf("%.1f%%", row.WastePct),
			wpm,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Grand total row
	y = breakSummaryPage(pdf, y, 6)
	totals := rep.Rollup.Totals
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	totalData := []string{
		"TOTAL", "",
		fmt.Sprintf("%d", totals.BarCount),
		fmt.Sprintf("%.3f", totals.Tonnage),
		fmt.Sprintf("%d", totals.TotalCuts),
		fmt.Sprintf("%.2f", totals.WasteM),
		fmt.Sprintf("%.3f", totals.WasteTonnage),
		"", "",
	}
	xPos := marginLeft
	for j, cell := range totalData {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
		xPos += colWidths[j]
	}
	y += 10

	// The optimizer average is length-weighted, the row mean is not;
	// both are shown under their own label.
	y = breakSummaryPage(pdf, y, 16)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(120, 6, fmt.Sprintf("Average waste (optimizer, length-weighted): %.2f%%", rep.Rollup.UpstreamAvgWastePct), "", 0, "L", false, 0, "")
	y += 6
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(120, 6, fmt.Sprintf("Average waste (mean of table rows): %.2f%%", rep.Rollup.RowMeanWastePct), "", 0, "L", false, 0, "")
	y += 10

	y = renderErrorParts(pdf, rep.ErrorParts, y)
	renderWarnings(pdf, rep.Warnings, y)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BeamCut - Steel Bar Nesting Reports", "", 0, "C", false, 0, "")
}

// breakSummaryPage starts a new page when the next block of the given
// height would run past the bottom margin, returning the adjusted y.
func breakSummaryPage(pdf *fpdf.Fpdf, y, blockHeight float64) float64 {
	if y+blockHeight <= pageHeight-marginBottom-6 {
		return y
	}
	pdf.AddPage()
	return marginTop
}

func renderErrorParts(pdf *fpdf.Fpdf, parts []rollup.ErrorPart, y float64) float64 {
	if len(parts) == 0 {
		return y
	}

	y = breakSummaryPage(pdf, y, 16)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 7, "WARNING: Parts exceeding available stock", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, part := range parts {
		y = breakSummaryPage(pdf, y, 5)
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("- %s / %s: %.2f mm exceeds %.0f mm stock (qty: %d)",
			part.ProfileName, part.Reference, part.LengthMm, part.StockLengthMm, part.Quantity)
		pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
		y += 5
	}
	return y + 3
}

func renderWarnings(pdf *fpdf.Fpdf, warnings []string, y float64) {
	if len(warnings) == 0 {
		return
	}

	y = breakSummaryPage(pdf, y, 15)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(180, 120, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 6, "Data warnings", "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, w := range warnings {
		y = breakSummaryPage(pdf, y, 4)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(250, 4, "- "+w, "", 0, "L", false, 0, "")
		y += 4
	}
}

// segmentFontSize returns an appropriate font size for a segment width.
func segmentFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
