package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/engine"
	"github.com/erplens/erplens/internal/export"
)

var (
	exportRunID  string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a run as a structured document, event log, or mining log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := engine.New(cfg, nil)
		run, err := eng.LoadRun(exportRunID)
		if err != nil {
			return exitWith(ExitInput, err)
		}
		if run.Document == nil {
			return exitWith(ExitInput, fmt.Errorf("run %s holds no document", run.Summary.RunID))
		}

		out, err := export.Render(exportFormat, run.Document)
		if err != nil {
			return exitWith(ExitInput, err)
		}

		if exportOut == "" {
			_, err = os.Stdout.Write(out.Data)
			return err
		}
		if err := os.WriteFile(exportOut, out.Data, 0o644); err != nil {
			return exitWith(ExitInput, fmt.Errorf("writing export: %w", err))
		}
		fmt.Printf("Run %s exported to %s (%s)\n", run.Summary.RunID, exportOut, out.ContentType)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run identifier (default: latest)")
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatStructured,
		"structured-document, tabular, or process-mining-log")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
