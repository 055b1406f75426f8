package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/engine"
)

var interpretRunID string

var interpretCmd = &cobra.Command{
	Use:   "interpret",
	Short: "Show interpretation and simplification findings for a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := engine.New(cfg, nil)
		run, err := eng.LoadRun(interpretRunID)
		if err != nil {
			return exitWith(ExitInput, err)
		}
		if run.Document == nil {
			return exitWith(ExitInput, fmt.Errorf("run %s holds no document", run.Summary.RunID))
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Interpretations (%d)", len(run.Document.Interpretations))))
		for _, f := range run.Document.Interpretations {
			fmt.Printf("  [%s] %s\n", f.RuleID, f.Interpretation)
			fmt.Printf("    impact: %s\n", dimStyle.Render(f.Impact))
			if f.TargetRelevance != "" {
				fmt.Printf("    target relevance: %s\n", dimStyle.Render(f.TargetRelevance))
			}
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Simplification findings (%d)", len(run.Document.Simplifications))))
		for _, f := range run.Document.Simplifications {
			fmt.Printf("  %s [%s/%s] %s: %s\n", statusStyle(f.Severity).Render(f.Severity),
				f.Category, f.RuleID, f.Artifact, f.Title)
			fmt.Printf("    %s\n", dimStyle.Render(f.Recommendation))
		}
		return nil
	},
}

func init() {
	interpretCmd.Flags().StringVar(&interpretRunID, "run", "", "run identifier (default: latest)")
	rootCmd.AddCommand(interpretCmd)
}
