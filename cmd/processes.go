package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/engine"
)

var (
	processesRunID string
	processesID    string
)

var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "Show the mined process catalog for a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := engine.New(cfg, nil)
		run, err := eng.LoadRun(processesRunID)
		if err != nil {
			return exitWith(ExitInput, err)
		}
		if run.Document == nil || run.Document.Processes == nil {
			return exitWith(ExitInput, fmt.Errorf("run %s holds no process catalog", run.Summary.RunID))
		}
		catalog := run.Document.Processes

		if processesID != "" {
			p := catalog.Process(processesID)
			if p == nil {
				return exitWith(ExitInput, fmt.Errorf("no mined process %q in run %s", processesID, run.Summary.RunID))
			}
			fmt.Println(titleStyle.Render(p.Name))
			fmt.Printf("  cases: %d  variants: %d\n", p.CaseCount, p.VariantCount)
			for _, v := range p.TopVariants {
				fmt.Printf("  variant x%d: %v\n", v.Count, v.Sequence)
			}
			for _, e := range p.BottleneckTransitions {
				fmt.Printf("  %s %s -> %s (median %.1fh, %d observation(s))\n",
					warnStyle.Render("bottleneck:"), e.From, e.To, e.MedianHours, e.Count)
			}
			for _, v := range p.Violations {
				fmt.Printf("  %s case %s unexpected transition %s -> %s\n",
					failStyle.Render("violation:"), v.CaseID, v.From, v.To)
			}
			for _, b := range p.SLABreaches {
				fmt.Printf("  %s case %s %s -> %s took %.1fh (target %.1fh)\n",
					statusStyle(b.Severity).Render("sla "+b.Severity+":"), b.CaseID, b.From, b.To, b.ElapsedHours, b.TargetHours)
			}
			return nil
		}

		fmt.Print(catalog.Summary())
		return nil
	},
}

func init() {
	processesCmd.Flags().StringVar(&processesRunID, "run", "", "run identifier (default: latest)")
	processesCmd.Flags().StringVar(&processesID, "process", "", "detail view of one process family")
	rootCmd.AddCommand(processesCmd)
}
