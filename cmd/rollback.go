package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/engine"
	"github.com/erplens/erplens/internal/lock"
)

var (
	rollbackFamily    string
	rollbackUser      string
	rollbackApprovers []string
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Drop the staged collections of a migration family",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := setupLogger(cfg)
		if err != nil {
			return err
		}

		if err := lock.Acquire(""); err != nil {
			return exitWith(ExitInput, err)
		}
		defer lock.Release("")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng := engine.New(cfg, logger)
		result, err := eng.RollbackStaging(ctx, engine.MigrationOptions{
			Family:    rollbackFamily,
			User:      rollbackUser,
			Approvers: rollbackApprovers,
		})
		if err != nil {
			return exitWith(ExitInput, err)
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Rollback: %d collection(s) dropped", len(result.DroppedCollections))))
		for _, name := range result.DroppedCollections {
			fmt.Printf("  %s %s\n", okStyle.Render("dropped:"), name)
		}
		for _, msg := range result.Errors {
			fmt.Printf("  %s %s\n", failStyle.Render("error:"), msg)
		}
		if len(result.Errors) > 0 {
			return exitWith(ExitPartial, fmt.Errorf("%d collection(s) could not be dropped", len(result.Errors)))
		}
		return nil
	},
}

func init() {
	rollbackCmd.Flags().StringVar(&rollbackFamily, "family", "", "source family (default: configured source)")
	rollbackCmd.Flags().StringVar(&rollbackUser, "user", "", "operator recorded in the audit log")
	rollbackCmd.Flags().StringSliceVar(&rollbackApprovers, "approver", nil, "approver(s) for the gated drop")
	rootCmd.AddCommand(rollbackCmd)
}
