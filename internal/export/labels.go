package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BeamCut/internal/report"
	qrcode "github.com/skip2/go-qrcode"
)

// BarLabel holds the data encoded into each stock bar's QR code. The saw
// operator scans it to pull up the bar's cutting pattern.
type BarLabel struct {
	PatternID   string    `json:"pattern_id"`
	ProfileName string    `json:"profile"`
	BarNumber   int       `json:"bar"`
	StockLength float64   `json:"stock_mm"`
	PartCount   int       `json:"parts"`
	Cuts        int       `json:"cuts"`
	WasteMm     float64   `json:"waste_mm"`
	Lengths     []float64 `json:"lengths_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page on US Letter).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per stock bar.
func ExportLabels(path string, rep report.Report) error {
	var labels []BarLabel
	for _, pr := range rep.Profiles {
		for i, pattern := range pr.Patterns {
			src := pr.Profile.CuttingPatterns[i]
			lengths := make([]float64, 0, len(pattern.Segments))
			for _, seg := range pattern.Segments {
				lengths = append(lengths, seg.LengthMm)
			}
			labels = append(labels, BarLabel{
				PatternID:   pattern.PatternID,
				ProfileName: pr.Profile.ProfileName,
				BarNumber:   i + 1,
				StockLength: pattern.StockLengthMm,
				PartCount:   len(pattern.Segments),
				Cuts:        src.InternalCuts(),
				WasteMm:     src.WasteMm,
				Lengths:     lengths,
			})
		}
	}

	if len(labels) == 0 {
		return fmt.Errorf("no cutting patterns to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderBarLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for bar %s/%d: %w", label.ProfileName, label.BarNumber, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderBarLabel draws a single label at the given position.
func renderBarLabel(pdf *fpdf.Fpdf, x, y float64, index int, label BarLabel) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(label)
	if err != nil {
		return fmt.Errorf("failed to marshal label data: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", index, label.PatternID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Profile name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("%s  bar %d", label.ProfileName, label.BarNumber)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	stock := fmt.Sprintf("Stock %.0f mm, %d parts", label.StockLength, label.PartCount)
	pdf.CellFormat(textW, 3.5, stock, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	detail := fmt.Sprintf("%d cuts, waste %.0f mm", label.Cuts, label.WasteMm)
	pdf.CellFormat(textW, 3, detail, "", 1, "L", false, 0, "")

	if label.PatternID != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(textW, 3, "ID "+label.PatternID, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
