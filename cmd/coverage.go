package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/engine"
)

var (
	coverageRunID string
	coverageGaps  bool
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show what a run extracted, failed, or skipped",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := engine.New(cfg, nil)
		run, err := eng.LoadRun(coverageRunID)
		if err != nil {
			return exitWith(ExitInput, err)
		}

		if coverageGaps {
			if len(run.Summary.Gaps) == 0 {
				fmt.Println(okStyle.Render("No gaps: every registered table was extracted"))
				return nil
			}
			fmt.Println(titleStyle.Render(fmt.Sprintf("Gaps in run %s", run.Summary.RunID)))
			for _, gap := range run.Summary.Gaps {
				line := fmt.Sprintf("  %-8s %-40s %-24s %s", gap.Module, gap.ExtractorID, gap.Table, gap.Status)
				if gap.Reason != "" {
					line += "  (" + gap.Reason + ")"
				}
				fmt.Println(line)
			}
			return nil
		}

		// Prefer the run's persisted tracker; older runs only carry the
		// aggregate report inside the document.
		var report *coverage.SystemReport
		if run.Coverage != nil {
			sr := run.Coverage.SystemReport()
			report = &sr
		} else if run.Document != nil {
			report = run.Document.Coverage
		}
		if report == nil {
			return exitWith(ExitInput, fmt.Errorf("run %s holds no coverage report", run.Summary.RunID))
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Coverage for run %s", run.Summary.RunID)))
		fmt.Printf("  extracted %d / %d table(s) (%d%%), failed %d, skipped %d\n",
			report.Extracted, report.Total, report.CoveragePct, report.Failed, report.Skipped)

		ids := make([]string, 0, len(report.PerExtractor))
		for id := range report.PerExtractor {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			per := report.PerExtractor[id]
			style := okStyle
			if per.Failed > 0 {
				style = failStyle
			} else if per.CoveragePct < 100 {
				style = warnStyle
			}
			fmt.Printf("  %-44s %s\n", id, style.Render(fmt.Sprintf("%3d%% (%d/%d)", per.CoveragePct, per.Extracted, per.Total)))
		}
		return nil
	},
}

func init() {
	coverageCmd.Flags().StringVar(&coverageRunID, "run", "", "run identifier (default: latest)")
	coverageCmd.Flags().BoolVar(&coverageGaps, "gaps", false, "list non-extracted tables instead of the aggregate")
	rootCmd.AddCommand(coverageCmd)
}
