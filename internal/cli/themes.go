package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/library"
)

var (
	themesShowJSON  bool
	themesSaveName  string
	themesSaveDesc  string
	themesSaveStyle string
)

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesShowCmd)
	themesCmd.AddCommand(themesSaveCmd)
	themesCmd.AddCommand(themesDeleteCmd)

	themesShowCmd.Flags().BoolVar(&themesShowJSON, "json", false, "print the schema as JSON")
	themesSaveCmd.Flags().StringVar(&themesSaveName, "name", "", "override the theme name")
	themesSaveCmd.Flags().StringVar(&themesSaveDesc, "description", "", "theme description")
	themesSaveCmd.Flags().StringVar(&themesSaveStyle, "variant", "", "theme variant: light or dark")
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Manage the theme library",
	Long:  "List, inspect and import the named themes shade can apply.",
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		themes, err := app.library.List()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(themes))
		for _, t := range themes {
			rows = append(rows, []string{
				t.Name,
				t.Variant,
				formatYesNo(t.Source == "builtin"),
				t.Description,
			})
		}
		return writeTable(os.Stdout, []string{"NAME", "VARIANT", "BUILTIN", "DESCRIPTION"}, rows)
	},
}

var themesShowCmd = &cobra.Command{
	Use:   "show <theme>",
	Short: "Show a theme's resolved colors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		theme, err := app.library.Get(args[0])
		if err != nil {
			return err
		}
		sch, err := theme.Schema()
		if err != nil {
			return err
		}

		if themesShowJSON {
			return printJSON(library.FromSchema(sch, theme.Description, theme.Variant))
		}

		rows := make([][]string, 0, len(sch.Roles)+len(sch.Extensions))
		for _, role := range sch.SortedRoles() {
			rows = append(rows, []string{string(role), sch.Roles[role].Hex()})
		}
		for _, name := range sch.SortedExtensions() {
			rows = append(rows, []string{name, sch.Extensions[name].Hex()})
		}
		return writeTable(os.Stdout, []string{"ROLE", "COLOR"}, rows)
	},
}

var themesSaveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Import a theme file into the library",
	Long: "Save parses a GTK, Qt or token source file and stores the resulting schema as\n" +
		"a named library theme.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		sch, err := app.registry.Parse(format.Source{Path: args[0]})
		if err != nil {
			return err
		}
		if themesSaveName != "" {
			sch.Name = themesSaveName
		}

		theme := library.FromSchema(sch, themesSaveDesc, themesSaveStyle)
		path, err := app.library.Save(theme)
		if err != nil {
			return err
		}
		fmt.Printf("Saved theme %q to %s\n", theme.Name, path)
		return nil
	},
}

var themesDeleteCmd = &cobra.Command{
	Use:   "delete <theme>",
	Short: "Delete a user theme from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		if err := app.library.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted theme %q\n", args[0])
		return nil
	},
}
