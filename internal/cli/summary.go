package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamCut/internal/layout"
	"github.com/piwi3910/BeamCut/internal/report"
)

// SummaryCmd returns the terminal summary command.
func SummaryCmd() *cobra.Command {
	var weightsPath string
	var showBars bool

	cmd := &cobra.Command{
		Use:   "summary <nesting.json>",
		Short: "Print the rollup table and error parts to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := loadReport(args[0], weightsPath)
			if err != nil {
				return err
			}
			printSummary(rep, showBars)
			return nil
		},
	}

	cmd.Flags().StringVarP(&weightsPath, "weights", "w", "", "BOM weights JSON file for tonnage figures")
	cmd.Flags().BoolVar(&showBars, "bars", false, "also print a text diagram per bar")
	return cmd
}

func printSummary(rep report.Report, showBars bool) {
	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	bold.Printf("Nesting report: %s\n", rep.Source.Filename)
	fmt.Printf("Profiles: %d | Parts: %d | Bars: %d\n\n",
		rep.Source.Summary.TotalProfiles, rep.Source.Summary.TotalParts, rep.Source.Summary.TotalStockBars)

	bold.Println("Profile        Stock (mm)  Bars  Tonnage (t)  Cuts  Waste (m)  Waste %")
	for _, row := range rep.Rollup.Rows {
		tonnage := "       N/A"
		if row.HasTonnage {
			tonnage = fmt.Sprintf("%10.3f", row.Tonnage)
		}
		fmt.Printf("%-14s %10.0f %5d  %s %5d %10.2f %7.1f%%\n",
			row.ProfileName, row.StockLengthMm, row.BarCount, tonnage,
			row.TotalCuts, row.WasteM, row.WastePct)
	}

	totals := rep.Rollup.Totals
	bold.Printf("%-14s %10s %5d  %10.3f %5d %10.2f\n\n",
		"TOTAL", "", totals.BarCount, totals.Tonnage, totals.TotalCuts, totals.WasteM)

	fmt.Printf("Average waste (optimizer, length-weighted): %.2f%%\n", rep.Rollup.UpstreamAvgWastePct)
	fmt.Printf("Average waste (mean of table rows):         %.2f%%\n", rep.Rollup.RowMeanWastePct)

	if len(rep.ErrorParts) > 0 {
		fmt.Println()
		red.Println("Parts exceeding available stock:")
		for _, part := range rep.ErrorParts {
			fmt.Printf("  - %s / %s: %.2f mm exceeds %.0f mm stock (qty %d)\n",
				part.ProfileName, part.Reference, part.LengthMm, part.StockLengthMm, part.Quantity)
		}
	}

	if len(rep.Warnings) > 0 {
		fmt.Println()
		yellow.Println("Data warnings:")
		for _, w := range rep.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	if showBars {
		for _, pr := range rep.Profiles {
			fmt.Println()
			bold.Printf("%s\n", pr.Profile.ProfileName)
			for i, pattern := range pr.Patterns {
				printBar(pattern, i+1)
			}
		}
	}
}

// printBar renders one pattern as a fixed-width text diagram.
func printBar(pattern layout.Pattern, barNum int) {
	const width = 60.0
	rm := pattern.Render(width)

	line := make([]rune, int(width)+1)
	for i := range line {
		line[i] = ' '
	}
	for _, item := range rm.Items {
		start := int(item.StartCoord)
		end := int(item.EndCoord)
		for i := start; i < end && i < len(line); i++ {
			line[i] = '='
		}
	}
	for _, b := range rm.Boundaries {
		pos := int(b.PositionMm)
		if pos >= 0 && pos < len(line) {
			switch b.Kind {
			case layout.SharedMiter:
				line[pos] = '/'
			case layout.Separate:
				line[pos] = 'X'
			default:
				line[pos] = '|'
			}
		}
	}
	if rm.HasWaste {
		for i := int(rm.WasteStart); i < len(line); i++ {
			line[i] = '.'
		}
	}

	fmt.Printf("  bar %2d [%s] %.0fmm, waste %.0fmm\n", barNum, string(line), pattern.StockLengthMm, pattern.WasteMm)
}
