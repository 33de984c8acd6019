package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shadetool/shade/internal/format"
)

var (
	renderTo  string
	renderOut string
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderTo, "to", "", "target format: gtk, qt or tokens (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", ".", "output directory")
	_ = renderCmd.MarkFlagRequired("to")
}

var renderCmd = &cobra.Command{
	Use:   "render <theme|path>",
	Short: "Render a theme into one format without applying it",
	Long: "Render converts a theme to the requested format and writes the files under the\n" +
		"output directory. No snapshot is taken; this never touches live configuration.",
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

		renderer, ok := app.registry.Renderer(format.ID(renderTo))
		if !ok {
			return fmt.Errorf("unknown format %q (want gtk, qt or tokens)", renderTo)
		}

		art, err := renderer.Render(sch)
		if err != nil {
			return err
		}

		for rel, data := range art {
			path := filepath.Join(renderOut, rel)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Println(path)
		}
		return nil
	},
}
