// Package cli implements the beamcut command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamCut/internal/model"
	"github.com/piwi3910/BeamCut/internal/project"
	"github.com/piwi3910/BeamCut/internal/report"
)

// loadReport reads the nesting report and optional weights file, builds
// the full report model using saved preferences, and records the report
// in the recent list.
func loadReport(reportPath, weightsPath string) (report.Report, error) {
	src, err := project.LoadNestingReport(reportPath)
	if err != nil {
		return report.Report{}, err
	}

	weights, err := project.LoadProfileWeights(weightsPath)
	if err != nil {
		return report.Report{}, err
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}

	rep := report.Build(src, weights, report.ConfigFromApp(cfg))

	project.AddRecentReport(&cfg, reportPath)
	// Config save failures must not block report generation
	_ = project.SaveAppConfig(project.DefaultConfigPath(), cfg)

	return rep, nil
}

// exportCommand builds a cobra command that loads a report and hands it to
// an exporter. All file exporters share this shape.
func exportCommand(use, short, defaultOut string, export func(path string, rep report.Report) error) *cobra.Command {
	var weightsPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   use + " <nesting.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := loadReport(args[0], weightsPath)
			if err != nil {
				return err
			}
			if err := export(outPath, rep); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&weightsPath, "weights", "w", "", "BOM weights JSON file for tonnage figures")
	cmd.Flags().StringVarP(&outPath, "output", "o", defaultOut, "output file path")
	return cmd
}
