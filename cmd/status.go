package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/engine"
	"github.com/erplens/erplens/internal/lock"
)

var statusRunID string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the latest (or a specific) run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if held, pid, _ := lock.IsHeld(""); held {
			fmt.Println(warnStyle.Render(fmt.Sprintf("A run is in progress (PID %d)", pid)))
		}

		eng := engine.New(cfg, nil)
		run, err := eng.LoadRun(statusRunID)
		if err != nil {
			return exitWith(ExitInput, err)
		}
		printRunSummary(run.Summary)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusRunID, "run", "", "run identifier (default: latest)")
	rootCmd.AddCommand(statusCmd)
}
