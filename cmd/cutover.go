package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/erplens/erplens/internal/cutover"
	"github.com/erplens/erplens/internal/engine"
)

var (
	cutoverProject string
	cutoverUser    string
	cutoverOut     string
)

var cutoverCmd = &cobra.Command{
	Use:   "cutover",
	Short: "Build a phased cutover plan with critical path, checklist and rollback",
	Long: `Validate the migration objects in a dry run, then build the cutover
plan: phased tasks with a critical path, the readiness checklist, and
the rollback procedure. Write the plan to a file with --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := setupLogger(cfg)
		if err != nil {
			return err
		}

		eng := engine.New(cfg, logger)
		if _, err := eng.RunMigration(context.Background(), engine.MigrationOptions{
			DryRun: true,
			User:   cutoverUser,
		}); err != nil {
			return exitWith(ExitInput, err)
		}

		plan, err := eng.BuildCutoverPlan(cutoverProject, cutoverUser)
		if err != nil {
			return exitWith(ExitFatal, err)
		}

		printCutoverPlan(plan)

		if cutoverOut != "" {
			data, err := yaml.Marshal(plan)
			if err != nil {
				return exitWith(ExitFatal, fmt.Errorf("marshaling cutover plan: %w", err))
			}
			if err := os.WriteFile(cutoverOut, data, 0o644); err != nil {
				return exitWith(ExitInput, fmt.Errorf("writing cutover plan: %w", err))
			}
			fmt.Printf("Plan written to %s\n", cutoverOut)
		}
		return nil
	},
}

func printCutoverPlan(plan *cutover.Plan) {
	fmt.Println(titleStyle.Render("Cutover plan: " + plan.Project))
	fmt.Printf("  %d task(s), total %.1fh, critical path %.1fh\n",
		len(plan.Tasks), plan.Summary.TotalDurationHours, plan.Summary.CriticalPathHours)

	phases := make([]string, 0, len(plan.Summary.PhaseCounts))
	for phase := range plan.Summary.PhaseCounts {
		phases = append(phases, phase)
	}
	sort.Strings(phases)
	for _, phase := range phases {
		fmt.Printf("  %-10s %2d task(s), %.1fh\n", phase, plan.Summary.PhaseCounts[phase], plan.Summary.PhaseHours[phase])
	}

	fmt.Printf("  %s %v\n", warnStyle.Render("critical path:"), plan.Summary.CriticalPath)
	fmt.Printf("  checklist: %d item(s)  rollback: %d step(s) in %d minute(s), decision window %.0fh\n",
		len(plan.Checklist), len(plan.Rollback.Steps), plan.Rollback.TotalMinutes, plan.Rollback.DecisionWindowHours)
}

func init() {
	cutoverCmd.Flags().StringVar(&cutoverProject, "project", "erp-migration", "project name on the plan")
	cutoverCmd.Flags().StringVar(&cutoverUser, "user", "", "operator recorded in the audit log")
	cutoverCmd.Flags().StringVarP(&cutoverOut, "output", "o", "", "write the full plan as yaml")
	rootCmd.AddCommand(cutoverCmd)
}
