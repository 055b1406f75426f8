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
	"github.com/erplens/erplens/internal/migration"
)

var (
	migrateFamily    string
	migrateDryRun    bool
	migrateUser      string
	migrateApprovers []string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the migration objects through extract, transform, validate and load",
	Long: `Run the declared migration objects for the source family through the
ETVL pipeline in dependency order. Loading into staging requires an
approver; --dry-run stops after validation and needs none.`,
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
		report, err := eng.RunMigration(ctx, engine.MigrationOptions{
			Family:    migrateFamily,
			DryRun:    migrateDryRun,
			User:      migrateUser,
			Approvers: migrateApprovers,
		})
		if err != nil {
			return exitWith(ExitInput, err)
		}

		printMigrationReport(report, migrateDryRun)

		if report.Loaded() < len(report.Results) {
			return exitWith(ExitPartial, fmt.Errorf("%d of %d migration object(s) did not complete",
				len(report.Results)-report.Loaded(), len(report.Results)))
		}
		return nil
	},
}

func printMigrationReport(report *migration.RunReport, dryRun bool) {
	heading := "Migration run"
	if dryRun {
		heading = "Migration dry-run"
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d object(s) in %s", heading, len(report.Order), report.Duration.Round(1e6))))
	for _, id := range report.Order {
		res := report.Results[id]
		if res == nil {
			continue
		}
		fmt.Printf("  %-28s %s  extracted %d, transformed %d, loaded %d\n",
			id, statusStyle(res.Status).Render(res.Status),
			res.ExtractCount, res.TransformCount, res.LoadCount)
		for _, f := range res.Failures {
			if f.Blocking {
				fmt.Printf("    %s %s\n", failStyle.Render("blocked by:"), f.Message)
			} else {
				fmt.Printf("    %s %s\n", warnStyle.Render("warning:"), f.Message)
			}
		}
		if res.Reconciliation != nil && !res.Reconciliation.CountsMatch {
			fmt.Printf("    %s loaded %d but store holds %d\n", failStyle.Render("reconciliation mismatch:"),
				res.Reconciliation.LoadedCount, res.Reconciliation.StoreCount)
		}
		if res.Err != nil {
			fmt.Printf("    %s %v\n", failStyle.Render("error:"), res.Err)
		}
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFamily, "family", "", "source family (default: configured source)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "validate only, never load")
	migrateCmd.Flags().StringVar(&migrateUser, "user", "", "operator recorded in the audit log")
	migrateCmd.Flags().StringSliceVar(&migrateApprovers, "approver", nil, "approver(s) for gated operations")
	rootCmd.AddCommand(migrateCmd)
}
