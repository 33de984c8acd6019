package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupListJSON bool

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
	backupCmd.AddCommand(backupDeleteCmd)

	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "print backups as JSON")
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage theme backups",
	Long:  "List, restore and prune the snapshots taken before each apply.",
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		backups, err := app.store.List()
		if err != nil {
			return err
		}
		if backupListJSON {
			return printJSON(backups)
		}
		if len(backups) == 0 {
			fmt.Println("No backups.")
			return nil
		}

		rows := make([][]string, 0, len(backups))
		for _, b := range backups {
			rows = append(rows, []string{
				b.ID,
				b.Label,
				b.Reason,
				b.CreatedAt.Format("2006-01-02 15:04:05"),
				fmt.Sprintf("%d", len(b.Files)),
			})
		}
		return writeTable(os.Stdout, []string{"ID", "THEME", "REASON", "CREATED", "FILES"}, rows)
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a backup (the most recent when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		if err := app.manager.Restore(id); err != nil {
			return err
		}
		fmt.Println("Restore complete.")
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Trim the backup chain to the configured retention",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		removed, err := app.manager.Prune()
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d backup(s), keeping %d.\n", len(removed), app.cfg.BackupRetention)
		return nil
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one backup by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		lock, err := app.store.Acquire()
		if err != nil {
			return err
		}
		defer lock.Release()

		if err := app.store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted backup %s.\n", args[0])
		return nil
	},
}
