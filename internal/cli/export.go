package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamCut/internal/export"
)

// ReportCmd returns the PDF report command.
func ReportCmd() *cobra.Command {
	return exportCommand("report", "Generate a PDF report with bar diagrams and rollup tables", "report.pdf", export.ExportPDF)
}

// ExcelCmd returns the Excel workbook command.
func ExcelCmd() *cobra.Command {
	return exportCommand("excel", "Generate an Excel workbook with rollup, pattern and error-part sheets", "report.xlsx", export.ExportExcel)
}

// LabelsCmd returns the QR bar-label command.
func LabelsCmd() *cobra.Command {
	return exportCommand("labels", "Generate QR-coded labels, one per stock bar", "labels.pdf", export.ExportLabels)
}

// DXFCmd returns the DXF drawing command.
func DXFCmd() *cobra.Command {
	return exportCommand("dxf", "Generate a 1:1 DXF line drawing of all bar layouts", "bars.dxf", export.ExportDXF)
}
