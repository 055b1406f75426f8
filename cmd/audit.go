package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/config"
	"github.com/erplens/erplens/internal/engine"
	"github.com/erplens/erplens/internal/security"
)

var (
	auditOperation string
	auditUser      string
	auditResult    string
	auditLimit     int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the tamper-evident operation log",
}

var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List chained audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng := engine.New(cfg, nil)

		chain := eng.Audit.Chain()
		shown := 0
		for _, e := range chain {
			if auditOperation != "" && e.Operation != auditOperation {
				continue
			}
			if auditUser != "" && e.User != auditUser {
				continue
			}
			if auditResult != "" && e.Result != auditResult {
				continue
			}
			fmt.Printf("%4d  %s  tier %d  %-26s %-10s %s\n",
				e.Sequence, e.Timestamp.Format("2006-01-02 15:04:05"), e.Tier,
				e.Operation, statusStyle(e.Result).Render(e.Result), e.Details)
			if e.User != "" {
				fmt.Printf("      user: %s\n", dimStyle.Render(e.User))
			}
			shown++
			if auditLimit > 0 && shown == auditLimit {
				break
			}
		}
		if shown == 0 {
			fmt.Println(dimStyle.Render("No chained audit entries recorded"))
		}
		return nil
	},
}

var auditExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the audit chain to a yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng := engine.New(cfg, nil)
		if err := eng.Audit.Export(args[0]); err != nil {
			return exitWith(ExitInput, err)
		}
		fmt.Printf("Exported %d chained entr(ies) to %s\n", len(eng.Audit.Chain()), args[0])
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash linkage of an audit chain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := config.ExpandHome(cfg.Audit.Path)
		if len(args) == 1 {
			path = args[0]
		}
		chain, err := security.LoadChain(path)
		if err != nil {
			return exitWith(ExitInput, err)
		}
		if err := security.VerifyChain(chain); err != nil {
			fmt.Println(failStyle.Render("TAMPERED: " + err.Error()))
			return exitWith(ExitFatal, err)
		}
		fmt.Println(okStyle.Render(fmt.Sprintf("Chain of %d entr(ies) verifies", len(chain))))
		return nil
	},
}

func init() {
	auditLogCmd.Flags().StringVar(&auditOperation, "operation", "", "only this operation")
	auditLogCmd.Flags().StringVar(&auditUser, "user", "", "only this user")
	auditLogCmd.Flags().StringVar(&auditResult, "result", "", "only this result")
	auditLogCmd.Flags().IntVar(&auditLimit, "limit", 0, "stop after this many entries")
	auditCmd.AddCommand(auditLogCmd, auditExportCmd, auditVerifyCmd)
	rootCmd.AddCommand(auditCmd)
}
