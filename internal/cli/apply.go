package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shadetool/shade/internal/manager"
)

var (
	applyDryRun  bool
	applyJSON    bool
	applyTargets []string
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "validate and render without touching any file")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "print the result as JSON")
	applyCmd.Flags().StringSliceVarP(&applyTargets, "target", "t", nil, "apply only to these handlers (repeatable)")
}

var applyCmd = &cobra.Command{
	Use:   "apply <theme|path>",
	Short: "Apply a theme to the configured targets",
	Long: "Apply resolves the argument (library theme name or source file), validates the\n" +
		"schema, snapshots every target file and applies the theme. A failed apply is\n" +
		"rolled back to the snapshot.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		sch, err := app.resolveSchema(args[0])
		if err != nil {
			return err
		}

		run := app.manager.Apply
		if applyDryRun {
			run = app.manager.DryRun
		}

		res, err := run(sch, applyTargets...)
		if res != nil && applyJSON {
			if printErr := printJSON(res); printErr != nil {
				return printErr
			}
		}
		if err != nil {
			return err
		}
		if applyJSON {
			return nil
		}

		printApplyResult(res)
		return nil
	},
}

func printApplyResult(res *manager.ApplicationResult) {
	verb := "applied"
	if res.DryRun {
		verb = "validated (dry run)"
	}
	fmt.Printf("Theme %q %s: %d handler(s) applied, %d skipped, %d failed\n",
		res.Theme, verb, res.Applied(), len(res.Handlers)-res.Applied()-res.Failed(), res.Failed())
	if res.BackupID != "" {
		fmt.Printf("Backup: %s\n", res.BackupID)
	}
	for _, v := range res.Violations {
		fmt.Printf("Warning: %s\n", v.Message)
	}

	rows := make([][]string, 0, len(res.Handlers))
	for _, h := range res.Handlers {
		detail := strings.Join(h.Paths, ", ")
		if h.Error != "" {
			detail = h.Error
		}
		rows = append(rows, []string{h.Handler, string(h.Format), string(h.Outcome), detail})
	}
	_ = writeTable(os.Stdout, []string{"HANDLER", "FORMAT", "OUTCOME", "DETAIL"}, rows)
}
