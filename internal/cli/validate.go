package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shadetool/shade/internal/schema"
)

var validateJSON bool

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print violations as JSON")
}

var validateCmd = &cobra.Command{
	Use:   "validate <theme|path>",
	Short: "Validate a theme against the canonical schema rules",
	Long: "Validate checks that all mandatory roles are bound and reports contrast pairs\n" +
		"below their accessibility floor. Missing roles fail the command; low contrast\n" +
		"is reported but does not.",
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

		result := schema.Validate(sch)
		if validateJSON {
			if err := printJSON(result); err != nil {
				return err
			}
		} else if result.Clean() {
			fmt.Printf("Theme %q is valid: %d roles, %d extensions, no violations\n",
				sch.Name, len(sch.Roles), len(sch.Extensions))
		} else {
			for _, v := range result.Violations {
				fmt.Println(v.Message)
			}
		}

		if !result.OK() {
			return errors.New("theme has missing mandatory roles")
		}
		return nil
	},
}
