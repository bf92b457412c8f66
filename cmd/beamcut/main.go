// BeamCut - Steel Bar Nesting Reports
//
// Turns cutting-stock optimizer output into bar diagrams and numeric
// rollups: PDF reports, Excel workbooks, QR bar labels and DXF drawings.
//
// Build:
//   go build -o beamcut ./cmd/beamcut

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamCut/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "beamcut",
		Short:   "BeamCut - steel bar nesting reports",
		Version: "1.0.0",
		Long: `BeamCut turns cutting-stock optimizer output into shop-floor reports:
per-bar cutting diagrams with shared-cut classification, tonnage and
waste rollups per profile and stock length, and a list of parts that
cannot be fabricated from any available stock.`,
	}

	rootCmd.AddCommand(cli.SummaryCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.ExcelCmd())
	rootCmd.AddCommand(cli.LabelsCmd())
	rootCmd.AddCommand(cli.DXFCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
