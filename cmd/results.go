package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/erplens/erplens/internal/engine"
	"github.com/erplens/erplens/internal/export"
)

var (
	resultsRunID     string
	resultsExtractor string
	resultsRows      int
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the structured results of a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := engine.New(cfg, nil)
		run, err := eng.LoadRun(resultsRunID)
		if err != nil {
			return exitWith(ExitInput, err)
		}
		if run.Document == nil || len(run.Document.Results) == 0 {
			return exitWith(ExitInput, fmt.Errorf("run %s holds no extractor results", run.Summary.RunID))
		}

		ids := make([]string, 0, len(run.Document.Results))
		for id := range run.Document.Results {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			if resultsExtractor != "" && id != resultsExtractor {
				continue
			}
			printResult(id, run.Document.Results[id])
		}
		if resultsExtractor != "" {
			if _, ok := run.Document.Results[resultsExtractor]; !ok {
				return exitWith(ExitInput, fmt.Errorf("extractor %q has no result in run %s", resultsExtractor, run.Summary.RunID))
			}
		}
		return nil
	},
}

func printResult(id string, rd *export.ResultDoc) {
	fmt.Println(titleStyle.Render(id))
	names := make([]string, 0, len(rd.Sections))
	for name := range rd.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		section := rd.Sections[name]
		fmt.Printf("  %s: %d row(s), columns %v\n", name, len(section.Rows), section.Columns)
		if len(section.Summary) > 0 {
			keys := make([]string, 0, len(section.Summary))
			for k := range section.Summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("    %s: %g\n", k, section.Summary[k])
			}
		}
		limit := resultsRows
		if limit > len(section.Rows) {
			limit = len(section.Rows)
		}
		for _, row := range section.Rows[:limit] {
			fmt.Printf("    %s\n", dimStyle.Render(renderRow(section.Columns, row)))
		}
	}
}

func renderRow(columns []string, row map[string]interface{}) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s=%v", col, row[col]))
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "  "
		}
		out += p
	}
	return out
}

func init() {
	resultsCmd.Flags().StringVar(&resultsRunID, "run", "", "run identifier (default: latest)")
	resultsCmd.Flags().StringVar(&resultsExtractor, "extractor", "", "only this extractor's result")
	resultsCmd.Flags().IntVar(&resultsRows, "rows", 5, "sample rows to print per section")
	rootCmd.AddCommand(resultsCmd)
}
